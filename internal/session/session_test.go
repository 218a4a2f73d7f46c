package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typetrace/internal/event"
)

func presses(times ...float64) []event.KeyEvent {
	events := make([]event.KeyEvent, len(times))
	for i, ts := range times {
		events[i] = event.KeyEvent{Timestamp: ts, Code: 30, Key: "KEY_A", Kind: event.KindPress}
	}
	return events
}

func TestSegmentEmpty(t *testing.T) {
	sessions := Segment(nil, 300)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestSegmentSingleEvent(t *testing.T) {
	sessions := Segment(presses(100), 300)
	require.Len(t, sessions, 1)
	assert.Equal(t, 0.0, sessions[0].Duration())
}

func TestSegmentGapBoundary(t *testing.T) {
	// Gap of exactly the threshold stays in-session; strictly greater splits.
	same := Segment(presses(0, 300), 300)
	assert.Len(t, same, 1)

	split := Segment(presses(0, 300.001), 300)
	assert.Len(t, split, 2)
}

func TestSegmentSplitsOnGap(t *testing.T) {
	events := presses(0, 1, 2, 500, 501, 1200)
	sessions := Segment(events, 300)

	require.Len(t, sessions, 3)
	assert.Len(t, sessions[0].Events, 3)
	assert.Len(t, sessions[1].Events, 2)
	assert.Len(t, sessions[2].Events, 1)
	assert.Equal(t, 2.0, sessions[0].Duration())
	assert.Equal(t, 1.0, sessions[1].Duration())
}

func TestSegmentIsTotalPartition(t *testing.T) {
	events := presses(0, 10, 400, 401, 402, 900, 1500, 1501)
	sessions := Segment(events, 300)

	var joined []event.KeyEvent
	for _, s := range sessions {
		joined = append(joined, s.Events...)
	}
	assert.Equal(t, events, joined)
}

func TestSegmentInsertedGapStartsNewSession(t *testing.T) {
	base := presses(0, 100)
	one := Segment(base, 300)
	require.Len(t, one, 1)

	withGap := presses(0, 100, 500, 600)
	two := Segment(withGap, 300)
	require.Len(t, two, 2)
	assert.Equal(t, 500.0, two[1].Start())
}

func TestSegmentDefaultGap(t *testing.T) {
	sessions := Segment(presses(0, 250, 800), 0)
	// 250s gap within default 300s threshold, 550s gap beyond it.
	assert.Len(t, sessions, 2)
}
