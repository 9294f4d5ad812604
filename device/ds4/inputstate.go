// Package ds4 holds the wire format of a DualShock 4 pad as streamed to a
// VIIPER device.
package ds4

import (
	"encoding/binary"
	"io"
)

const (
	VendorID  = 0x054c
	ProductID = 0x05c4

	// InputStateSize is the size of the client to device stream packet.
	InputStateSize = 8

	// AxisCenter is the neutral value of every stick axis.
	AxisCenter = 0x80
	// HatNeutral is the d-pad nibble value with no direction held.
	HatNeutral = 0x08
)

// InputState is the client-facing input state. Layout:
//
//	LX, LY, RX, RY: 1 byte each (0 left/up .. 255 right/down)
//	Buttons:        2 bytes (LE uint16, low nibble is the d-pad hat)
//	L2, R2:         1 byte each
type InputState struct {
	LX, LY  uint8
	RX, RY  uint8
	Buttons uint16
	L2, R2  uint8
}

// Neutral returns a state with centred sticks and a released d-pad.
func Neutral() InputState {
	return InputState{
		LX: AxisCenter, LY: AxisCenter,
		RX: AxisCenter, RY: AxisCenter,
		Buttons: HatNeutral,
	}
}

// MarshalBinary encodes the state to InputStateSize bytes.
func (s InputState) MarshalBinary() ([]byte, error) {
	b := make([]byte, InputStateSize)
	b[0] = s.LX
	b[1] = s.LY
	b[2] = s.RX
	b[3] = s.RY
	binary.LittleEndian.PutUint16(b[4:6], s.Buttons)
	b[6] = s.L2
	b[7] = s.R2
	return b, nil
}

// UnmarshalBinary decodes InputStateSize bytes.
func (s *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < InputStateSize {
		return io.ErrUnexpectedEOF
	}
	s.LX, s.LY, s.RX, s.RY = data[0], data[1], data[2], data[3]
	s.Buttons = binary.LittleEndian.Uint16(data[4:6])
	s.L2 = data[6]
	s.R2 = data[7]
	return nil
}
