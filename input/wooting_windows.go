//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	wootingKeycodeVirtualKeyTranslate = 3
	wootingNoDevices                  = -1997
	wootingBufferLen                  = 64
)

// wootingSDK drives the Wooting analog SDK wrapper DLL.
type wootingSDK struct {
	initialise     *windows.LazyProc
	uninitialise   *windows.LazyProc
	setKeycodeMode *windows.LazyProc
	readFullBuffer *windows.LazyProc
}

// PlatformAnalogSDK loads the Wooting analog SDK wrapper.
func PlatformAnalogSDK() (AnalogSDK, error) {
	dll := windows.NewLazyDLL("wooting_analog_wrapper.dll")
	if err := dll.Load(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return &wootingSDK{
		initialise:     dll.NewProc("wooting_analog_initialise"),
		uninitialise:   dll.NewProc("wooting_analog_uninitialise"),
		setKeycodeMode: dll.NewProc("wooting_analog_set_keycode_mode"),
		readFullBuffer: dll.NewProc("wooting_analog_read_full_buffer"),
	}, nil
}

func (w *wootingSDK) Initialise() (int, error) {
	r, _, _ := w.initialise.Call()
	n := int32(r)
	if n < 0 {
		return 0, fmt.Errorf("wooting_analog_initialise: code %d", n)
	}
	if r, _, _ := w.setKeycodeMode.Call(wootingKeycodeVirtualKeyTranslate); int32(r) < 0 {
		return 0, fmt.Errorf("wooting_analog_set_keycode_mode: code %d", int32(r))
	}
	return int(n), nil
}

func (w *wootingSDK) ReadFull() (map[uint8]float64, error) {
	var codes [wootingBufferLen]uint16
	var depths [wootingBufferLen]float32
	r, _, _ := w.readFullBuffer.Call(
		uintptr(unsafe.Pointer(&codes[0])),
		uintptr(unsafe.Pointer(&depths[0])),
		wootingBufferLen,
	)
	n := int32(r)
	switch {
	case n == wootingNoDevices:
		return nil, ErrNoDevices
	case n < 0:
		return nil, fmt.Errorf("wooting_analog_read_full_buffer: code %d", n)
	}
	out := make(map[uint8]float64, n)
	for i := 0; i < int(min(n, wootingBufferLen)); i++ {
		if codes[i] <= 0xff {
			out[uint8(codes[i])] = float64(depths[i])
		}
	}
	return out, nil
}

func (w *wootingSDK) Uninitialise() error {
	if r, _, _ := w.uninitialise.Call(); int32(r) < 0 {
		return fmt.Errorf("wooting_analog_uninitialise: code %d", int32(r))
	}
	return nil
}
