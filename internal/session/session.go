// Package session partitions a chronological event stream into typing
// sessions separated by inactivity gaps.
package session

import (
	"typetrace/internal/event"
)

// DefaultGapSeconds is the inactivity threshold that closes a session.
const DefaultGapSeconds = 300.0

// Session is a maximal contiguous run of events where no consecutive pair is
// separated by more than the gap threshold. Sessions are derived values:
// recomputed on every analysis run, never stored.
type Session struct {
	Events []event.KeyEvent
}

// Start returns the timestamp of the first event. Zero for an empty session,
// which Segment never produces.
func (s Session) Start() float64 {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[0].Timestamp
}

// End returns the timestamp of the last event.
func (s Session) End() float64 {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].Timestamp
}

// Duration is End minus Start; zero for a single-event session.
func (s Session) Duration() float64 {
	return s.End() - s.Start()
}

// Segment partitions events into sessions. The input must be chronological,
// which the journal guarantees. A gap strictly greater than gapSeconds
// closes the current session; a gap exactly at the threshold does not. Every
// event lands in exactly one session, so concatenating the result reproduces
// the input. Empty input yields an empty slice. gapSeconds <= 0 falls back
// to DefaultGapSeconds.
func Segment(events []event.KeyEvent, gapSeconds float64) []Session {
	if gapSeconds <= 0 {
		gapSeconds = DefaultGapSeconds
	}

	sessions := make([]Session, 0)
	var current []event.KeyEvent

	for _, ev := range events {
		if len(current) > 0 && ev.Timestamp-current[len(current)-1].Timestamp > gapSeconds {
			sessions = append(sessions, Session{Events: current})
			current = nil
		}
		current = append(current, ev)
	}
	if len(current) > 0 {
		sessions = append(sessions, Session{Events: current})
	}
	return sessions
}
