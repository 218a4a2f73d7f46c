package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindPress, KindRelease, KindRepeat} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}

func TestParseKindUnknown(t *testing.T) {
	_, err := ParseKind("hold")
	assert.Error(t, err)
}

func TestRecordRoundTrip(t *testing.T) {
	ev := KeyEvent{
		Timestamp: 1700000000.123456,
		Code:      30,
		Key:       "KEY_A",
		Kind:      KindPress,
	}

	data, err := ev.Marshal()
	require.NoError(t, err)

	got, err := ParseRecord(data)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
}

func TestRecordDatetimeMirror(t *testing.T) {
	ev := KeyEvent{Timestamp: 1700000000, Code: 57, Key: "KEY_SPACE", Kind: KindRelease}
	rec := ev.Record()
	assert.Equal(t, ev.Time().Format("2006-01-02T15:04:05.000000"), rec.Datetime)
	assert.Equal(t, "release", rec.Event)
}

func TestParseRecordRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"not json", `{"timestamp": 1.0,`},
		{"bad kind", `{"timestamp":1.0,"code":30,"key":"KEY_A","event":"hold"}`},
		{"missing key", `{"timestamp":1.0,"code":30,"event":"press"}`},
		{"missing timestamp", `{"code":30,"key":"KEY_A","event":"press"}`},
		{"code out of range", `{"timestamp":1.0,"code":90000,"key":"KEY_A","event":"press"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRecord([]byte(tc.line))
			assert.Error(t, err)
		})
	}
}

func TestIsBackspace(t *testing.T) {
	assert.True(t, KeyEvent{Key: "KEY_BACKSPACE"}.IsBackspace())
	assert.False(t, KeyEvent{Key: "KEY_B"}.IsBackspace())
}
