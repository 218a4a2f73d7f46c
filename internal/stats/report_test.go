package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typetrace/internal/event"
	"typetrace/internal/session"
)

func TestRenderEmptyReport(t *testing.T) {
	var out strings.Builder
	r := Analyze(nil, nil, DefaultOptions())

	require.NoError(t, Render(&out, r))
	text := out.String()
	assert.Contains(t, text, "TYPING ANALYSIS REPORT")
	assert.Contains(t, text, "Keystrokes (presses): 0")
	assert.NotContains(t, text, "SLOWEST KEY TRANSITIONS")
}

func TestRenderFullReport(t *testing.T) {
	events := []event.KeyEvent{
		press(1700000000.0, "KEY_A"),
		press(1700000000.3, "KEY_B"),
		press(1700000000.5, "KEY_A"),
		press(1700000000.8, "KEY_B"),
		press(1700000001.0, "KEY_BACKSPACE"),
	}
	r := Analyze(events, session.Segment(events, 300), DefaultOptions())

	var out strings.Builder
	require.NoError(t, Render(&out, r))
	text := out.String()

	assert.Contains(t, text, "A -> B")
	assert.Contains(t, text, "KEYS BEFORE BACKSPACE")
	assert.Contains(t, text, "MOST USED KEYS")
	assert.Contains(t, text, "SESSIONS")
	// KEY_ prefixes are stripped for display.
	assert.NotContains(t, text, "KEY_A")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "A", formatKey("KEY_A"))
	assert.Equal(t, "A -> B", formatDigraph("KEY_A->KEY_B"))
	assert.Equal(t, "weird", formatDigraph("weird"))
	assert.Equal(t, "30.0s", formatDuration(30))
	assert.Equal(t, "2.0m", formatDuration(120))
	assert.Equal(t, "1.5h", formatDuration(5400))
}
