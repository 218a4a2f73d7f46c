//go:build linux

package evdev

import (
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// procInputDevices is the kernel's input device inventory.
const procInputDevices = "/proc/bus/input/devices"

// ioctl request construction for the evdev 'E' ioctl family.
const (
	iocRead     = 2
	iocTypeBits = 8
	iocNrBits   = 8
	iocSizeBits = 14

	evdevIoctlBase = 'E'
)

func evdevIoctl(nr, size uint) uint {
	return iocRead<<(iocNrBits+iocTypeBits+iocSizeBits) |
		size<<(iocNrBits+iocTypeBits) |
		evdevIoctlBase<<iocNrBits |
		nr
}

// eviocgname fetches the device name, eviocgbit the capability bitmap for an
// event type (type 0 yields the supported-event-types bitmap).
func eviocgname(buf []byte) uint { return evdevIoctl(0x06, uint(len(buf))) }
func eviocgbit(ev uint, buf []byte) uint {
	return evdevIoctl(0x20+ev, uint(len(buf)))
}

func ioctlBytes(fd int, req uint, buf []byte) (int, error) {
	n, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return 0, errno
	}
	return int(n), nil
}

// Device is an opened, validated keyboard device handle.
type Device struct {
	f    *os.File
	path string
	name string
}

// Open opens an input device node and validates that it reports key events
// covering letter keys. It performs no grabs; other readers of the device
// are unaffected.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, &DeviceError{Path: path, Op: "open", Err: err}
	}

	d := &Device{f: f, path: path}
	if err := d.validate(); err != nil {
		f.Close()
		return nil, err
	}
	return d, nil
}

// validate checks EV_KEY support and letter-key coverage via EVIOCGBIT, and
// reads the device name via EVIOCGNAME.
func (d *Device) validate() error {
	fd := int(d.f.Fd())

	// Supported event types: EV_MAX is 0x1f, so four bytes suffice.
	evBits := make([]byte, 4)
	if _, err := ioctlBytes(fd, eviocgbit(0, evBits), evBits); err != nil {
		return &DeviceError{Path: d.path, Op: "query capabilities", Err: err}
	}
	if evBits[evKey/8]&(1<<uint(evKey%8)) == 0 {
		return ErrNotKeyboard
	}

	// Key capability bitmap: KEY_MAX is 0x2ff, 96 bytes cover it.
	keyBits := make([]byte, 96)
	if _, err := ioctlBytes(fd, eviocgbit(evKey, keyBits), keyBits); err != nil {
		return &DeviceError{Path: d.path, Op: "query key capabilities", Err: err}
	}
	hasLetters := false
	for code := keyA; code <= keyZ; code++ {
		if keyBits[code/8]&(1<<uint(code%8)) != 0 {
			hasLetters = true
			break
		}
	}
	if !hasLetters {
		return ErrNotKeyboard
	}

	nameBuf := make([]byte, 256)
	if n, err := ioctlBytes(fd, eviocgname(nameBuf), nameBuf); err == nil && n > 0 {
		d.name = strings.TrimRight(string(nameBuf[:n]), "\x00")
	}
	return nil
}

// Name returns the kernel-reported device name, or the path when the name
// query failed.
func (d *Device) Name() string {
	if d.name == "" {
		return d.path
	}
	return d.name
}

// Path returns the device node path.
func (d *Device) Path() string { return d.path }

// Source returns the event source for this device.
func (d *Device) Source() *Source {
	return NewSource(d.f, d.path)
}

// Close releases the device handle. Any blocked Source.Next fails with a
// DeviceError afterwards, which is how capture shutdown unblocks the read
// loop.
func (d *Device) Close() error {
	return d.f.Close()
}

// ListKeyboards enumerates keyboard-capable devices from the kernel's input
// inventory. It does not open the device nodes, so it works without
// membership in the input group; opening may still fail later.
func ListKeyboards() ([]DeviceInfo, error) {
	f, err := os.Open(procInputDevices)
	if err != nil {
		return nil, &DeviceError{Path: procInputDevices, Op: "open", Err: err}
	}
	defer f.Close()

	devices := parseProcDevices(f)
	if len(devices) == 0 {
		return nil, ErrNoKeyboards
	}
	return devices, nil
}
