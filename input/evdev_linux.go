//go:build linux

package input

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// EvdevReader reads key events from a Linux input event device.
type EvdevReader struct {
	f      *os.File
	logger *slog.Logger
}

// evdevName is EVIOCGNAME(256).
const evdevName = (2 << 30) | ('E' << 8) | 0x06 | (256 << 16)

// OpenEvdev opens path, typically /dev/input/eventN.
func OpenEvdev(path string, logger *slog.Logger) (*EvdevReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event device: %w", err)
	}
	var name [256]byte
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), evdevName, uintptr(unsafe.Pointer(&name[0]))); errno == 0 {
		logger.Info("opened event device", "path", path, "name", unix.ByteSliceToString(name[:]))
	}
	return &EvdevReader{f: f, logger: logger}, nil
}

// Run decodes events into emit until the device is closed.
func (r *EvdevReader) Run(emit func(KeyEvent)) error {
	d := eventDecoder{size: int(unsafe.Sizeof(unix.Timeval{})) + 8}
	buf := make([]byte, d.size*64)
	for {
		n, err := r.f.Read(buf)
		if n > 0 {
			d.feed(buf[:n], emit)
		}
		if err != nil {
			if errors.Is(err, os.ErrClosed) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// Close stops Run.
func (r *EvdevReader) Close() error {
	return r.f.Close()
}
