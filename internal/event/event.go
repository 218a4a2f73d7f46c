// Package event defines the normalized keyboard event model and its
// line-delimited JSON wire form.
//
// One KeyEvent maps to exactly one journal line. The wire record carries a
// redundant human-readable datetime alongside the authoritative float
// timestamp; readers ignore the datetime field entirely.
package event

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Kind categorizes a key event as reported by the kernel.
type Kind int

const (
	KindPress Kind = iota
	KindRelease
	KindRepeat
)

// Wire names for Kind. These are part of the journal format and must not
// change.
const (
	wirePress   = "press"
	wireRelease = "release"
	wireRepeat  = "repeat"
)

// BackspaceKey is the symbolic name of the backspace key, used by the
// statistics engine for error detection.
const BackspaceKey = "KEY_BACKSPACE"

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPress:
		return wirePress
	case KindRelease:
		return wireRelease
	case KindRepeat:
		return wireRepeat
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a wire kind name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case wirePress:
		return KindPress, nil
	case wireRelease:
		return KindRelease, nil
	case wireRepeat:
		return KindRepeat, nil
	default:
		return 0, fmt.Errorf("unknown event kind %q", s)
	}
}

// KeyEvent is a single normalized keyboard event.
type KeyEvent struct {
	// Timestamp is Unix epoch seconds, taken from the kernel event time.
	Timestamp float64

	// Code is the stable scan code of the physical key.
	Code uint16

	// Key is the symbolic name, e.g. "KEY_A".
	Key string

	// Kind is press, release, or repeat.
	Kind Kind
}

// IsBackspace reports whether the event is for the backspace key.
func (e KeyEvent) IsBackspace() bool {
	return e.Key == BackspaceKey
}

// Time returns the event timestamp as a time.Time in the local zone.
func (e KeyEvent) Time() time.Time {
	sec, frac := math.Modf(e.Timestamp)
	return time.Unix(int64(sec), int64(frac*1e9))
}

// Record is the JSONL wire form of a KeyEvent.
type Record struct {
	Timestamp float64 `json:"timestamp"`
	Datetime  string  `json:"datetime"`
	Code      int     `json:"code"`
	Key       string  `json:"key"`
	Event     string  `json:"event"`
}

// datetimeLayout mirrors ISO-8601 local time with microsecond precision.
const datetimeLayout = "2006-01-02T15:04:05.000000"

// Record converts the event to its wire form, rendering the datetime mirror
// from the timestamp.
func (e KeyEvent) Record() Record {
	return Record{
		Timestamp: e.Timestamp,
		Datetime:  e.Time().Format(datetimeLayout),
		Code:      int(e.Code),
		Key:       e.Key,
		Event:     e.Kind.String(),
	}
}

// Marshal serializes the event as a single JSON line without the trailing
// newline.
func (e KeyEvent) Marshal() ([]byte, error) {
	return json.Marshal(e.Record())
}

// ParseRecord parses one journal line into a KeyEvent. The datetime field is
// ignored; the float timestamp is authoritative.
func ParseRecord(line []byte) (KeyEvent, error) {
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return KeyEvent{}, fmt.Errorf("parse record: %w", err)
	}
	kind, err := ParseKind(rec.Event)
	if err != nil {
		return KeyEvent{}, fmt.Errorf("parse record: %w", err)
	}
	if rec.Key == "" {
		return KeyEvent{}, fmt.Errorf("parse record: missing key name")
	}
	if rec.Timestamp <= 0 {
		return KeyEvent{}, fmt.Errorf("parse record: missing or invalid timestamp")
	}
	if rec.Code < 0 || rec.Code > math.MaxUint16 {
		return KeyEvent{}, fmt.Errorf("parse record: key code %d out of range", rec.Code)
	}
	return KeyEvent{
		Timestamp: rec.Timestamp,
		Code:      uint16(rec.Code),
		Key:       rec.Key,
		Kind:      kind,
	}, nil
}
