package input

import "encoding/binary"

const (
	evKey = 0x01

	keyReleased = 0
	keyPressed  = 1
	keyRepeat   = 2
)

// eventDecoder splits a byte stream of kernel input_event records. size is
// 24 on 64-bit timeval kernels and 16 on 32-bit ones.
type eventDecoder struct {
	size int
	buf  []byte
}

// feed appends chunk and emits a KeyEvent for every complete key record whose
// code has a virtual-key mapping.
func (d *eventDecoder) feed(chunk []byte, emit func(KeyEvent)) {
	d.buf = append(d.buf, chunk...)
	off := d.size - 8
	for len(d.buf) >= d.size {
		rec := d.buf[:d.size]
		d.buf = d.buf[d.size:]
		typ := binary.LittleEndian.Uint16(rec[off:])
		code := binary.LittleEndian.Uint16(rec[off+2:])
		value := int32(binary.LittleEndian.Uint32(rec[off+4:]))
		if typ != evKey || value == keyRepeat {
			continue
		}
		vk, ok := LinuxKeyToVK(code)
		if !ok {
			continue
		}
		emit(KeyEvent{Code: vk, Pressed: value == keyPressed})
	}
}
