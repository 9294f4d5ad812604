//go:build !windows

package input

// PlatformKeyState has no global key-state query outside Windows. Use the
// raw event stream instead.
func PlatformKeyState() (KeyStateFunc, error) {
	return nil, ErrUnsupported
}
