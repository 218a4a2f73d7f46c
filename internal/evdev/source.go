// Package evdev reads normalized key events from Linux input devices.
//
// Device discovery parses /proc/bus/input/devices; the open path validates
// key-event capability with EVIOCGBIT before any read. The Source decodes the
// kernel input_event stream and yields only EV_KEY events, mapped to
// press/release/repeat. Everything else the kernel emits (SYN markers, LED
// and MSC events) is silently discarded.
package evdev

import (
	"io"

	"typetrace/internal/event"
)

// Source yields a blocking, infinite sequence of normalized key events from
// an opened device stream. It performs no writes and no buffering beyond one
// kernel frame.
type Source struct {
	r    io.Reader
	path string
	buf  [rawEventSize]byte
}

// NewSource wraps an opened device stream. path is used for error reporting
// only.
func NewSource(r io.Reader, path string) *Source {
	return &Source{r: r, path: path}
}

// Next blocks until the next key event arrives and returns it. Non-key
// frames are consumed and skipped. Any read failure, including EOF, is
// returned as a *DeviceError: a live character device never cleanly ends, so
// EOF means the handle went away.
func (s *Source) Next() (event.KeyEvent, error) {
	for {
		if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
			return event.KeyEvent{}, &DeviceError{Path: s.path, Op: "read", Err: err}
		}

		raw := decodeRawEvent(s.buf[:])
		if raw.Type != evKey {
			continue
		}

		var kind event.Kind
		switch raw.Value {
		case valuePress:
			kind = event.KindPress
		case valueRelease:
			kind = event.KindRelease
		case valueRepeat:
			kind = event.KindRepeat
		default:
			continue
		}

		return event.KeyEvent{
			Timestamp: raw.timestamp(),
			Code:      raw.Code,
			Key:       KeyName(raw.Code),
			Kind:      kind,
		}, nil
	}
}
