//go:build windows

package input

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// PlatformKeyState returns a KeyStateFunc backed by GetAsyncKeyState.
func PlatformKeyState() (KeyStateFunc, error) {
	if err := procGetAsyncKeyState.Find(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	return func(code uint8) bool {
		r, _, _ := procGetAsyncKeyState.Call(uintptr(code))
		return uint16(r)&0x8000 != 0
	}, nil
}
