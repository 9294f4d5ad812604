package input

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(size int, typ, code uint16, value int32) []byte {
	b := make([]byte, size)
	off := size - 8
	binary.LittleEndian.PutUint16(b[off:], typ)
	binary.LittleEndian.PutUint16(b[off+2:], code)
	binary.LittleEndian.PutUint32(b[off+4:], uint32(value))
	return b
}

func TestEventDecoder(t *testing.T) {
	for _, size := range []int{16, 24} {
		var stream []byte
		stream = append(stream, record(size, evKey, 17, keyPressed)...)
		stream = append(stream, record(size, 0x00, 0, 0)...)
		stream = append(stream, record(size, evKey, 17, keyRepeat)...)
		stream = append(stream, record(size, evKey, 0x14A, keyPressed)...)
		stream = append(stream, record(size, evKey, 17, keyReleased)...)

		var got []KeyEvent
		d := eventDecoder{size: size}
		// Split mid-record to exercise buffering.
		d.feed(stream[:size+3], func(e KeyEvent) { got = append(got, e) })
		d.feed(stream[size+3:], func(e KeyEvent) { got = append(got, e) })

		assert.Equal(t, []KeyEvent{
			{Code: 'W', Pressed: true},
			{Code: 'W', Pressed: false},
		}, got, "size %d", size)
	}
}
