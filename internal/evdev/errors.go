package evdev

import (
	"errors"
	"fmt"
)

var (
	// ErrNoKeyboards indicates device enumeration found no keyboard-capable
	// input devices.
	ErrNoKeyboards = errors.New("evdev: no keyboard devices found")

	// ErrNotKeyboard indicates an explicitly selected device does not report
	// key events.
	ErrNotKeyboard = errors.New("evdev: device does not report key events")

	// ErrUnsupportedPlatform indicates the build target has no evdev support.
	ErrUnsupportedPlatform = errors.New("evdev: only supported on linux")
)

// DeviceError is a fatal device-level failure: the handle became invalid, the
// device was unplugged, or permission was revoked. It is distinct from clean
// stream exhaustion so callers can tell "unplugged" from "no more events".
type DeviceError struct {
	Path string
	Op   string
	Err  error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("evdev: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
