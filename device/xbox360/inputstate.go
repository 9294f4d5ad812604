// Package xbox360 holds the wire formats of a wired Xbox 360 pad as streamed
// to a VIIPER device and as seen on USB.
package xbox360

import (
	"encoding/binary"
	"io"
)

const (
	VendorID  = 0x31e3
	ProductID = 0xffff

	// InputStateSize is the size of the client to device stream packet.
	InputStateSize = 14
	// ReportSize is the size of the USB interrupt IN report.
	ReportSize = 20
)

// InputState is the wire format for controller inputs sent from client to
// device. Layout (little-endian):
//
//	Buttons: 4 bytes (uint32)
//	LT, RT:  1 byte each
//	LX, LY:  2 bytes each (int16)
//	RX, RY:  2 bytes each (int16)
type InputState struct {
	Buttons uint32
	LT, RT  uint8
	LX, LY  int16
	RX, RY  int16
}

// Sticks returns a state with only the stick axes set.
func Sticks(lx, ly, rx, ry int16) InputState {
	return InputState{LX: lx, LY: ly, RX: rx, RY: ry}
}

// MarshalBinary encodes the state to InputStateSize bytes.
func (s InputState) MarshalBinary() ([]byte, error) {
	b := make([]byte, InputStateSize)
	binary.LittleEndian.PutUint32(b[0:4], s.Buttons)
	b[4] = s.LT
	b[5] = s.RT
	binary.LittleEndian.PutUint16(b[6:8], uint16(s.LX))
	binary.LittleEndian.PutUint16(b[8:10], uint16(s.LY))
	binary.LittleEndian.PutUint16(b[10:12], uint16(s.RX))
	binary.LittleEndian.PutUint16(b[12:14], uint16(s.RY))
	return b, nil
}

// UnmarshalBinary decodes InputStateSize bytes.
func (s *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < InputStateSize {
		return io.ErrUnexpectedEOF
	}
	s.Buttons = binary.LittleEndian.Uint32(data[0:4])
	s.LT = data[4]
	s.RT = data[5]
	s.LX = int16(binary.LittleEndian.Uint16(data[6:8]))
	s.LY = int16(binary.LittleEndian.Uint16(data[8:10]))
	s.RX = int16(binary.LittleEndian.Uint16(data[10:12]))
	s.RY = int16(binary.LittleEndian.Uint16(data[12:14]))
	return nil
}

// Report encodes the state into the 20-byte wired controller report:
//
//	0:     message type (0x00)
//	1:     payload size (0x14)
//	2-3:   buttons
//	4:     LT
//	5:     RT
//	6-13:  LX, LY, RX, RY (int16)
//	14-19: reserved
func (s InputState) Report() []byte {
	b := make([]byte, ReportSize)
	b[1] = ReportSize
	binary.LittleEndian.PutUint16(b[2:4], uint16(s.Buttons&0xffff))
	b[4] = s.LT
	b[5] = s.RT
	binary.LittleEndian.PutUint16(b[6:8], uint16(s.LX))
	binary.LittleEndian.PutUint16(b[8:10], uint16(s.LY))
	binary.LittleEndian.PutUint16(b[10:12], uint16(s.RX))
	binary.LittleEndian.PutUint16(b[12:14], uint16(s.RY))
	return b
}
