//go:build !linux

package evdev

// Device is a stub on non-linux platforms.
type Device struct{}

// Open always fails off linux; there is no evdev to read.
func Open(path string) (*Device, error) {
	return nil, ErrUnsupportedPlatform
}

func (d *Device) Name() string    { return "" }
func (d *Device) Path() string    { return "" }
func (d *Device) Source() *Source { return nil }
func (d *Device) Close() error    { return nil }

// ListKeyboards always fails off linux.
func ListKeyboards() ([]DeviceInfo, error) {
	return nil, ErrUnsupportedPlatform
}
