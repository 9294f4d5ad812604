//go:build !windows

package input

// PlatformAnalogSDK has no analog keyboard backend outside Windows.
func PlatformAnalogSDK() (AnalogSDK, error) {
	return nil, ErrUnsupported
}
