package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyValidJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystrokes.jsonl")
	writeAll(t, path, testEvents())

	res, err := Verify(path)
	require.NoError(t, err)
	assert.Equal(t, len(testEvents()), res.Valid)
	assert.Zero(t, res.Invalid)
	assert.Empty(t, res.Errors)
}

func TestVerifyFlagsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystrokes.jsonl")
	lines := `{"timestamp":1.5,"datetime":"2023-11-14T00:00:00.000000","code":30,"key":"KEY_A","event":"press"}
not json at all
{"timestamp":1.5,"code":30,"key":"KEY_A","event":"hold"}
{"timestamp":1.5,"code":30,"event":"press"}
{"timestamp":-1,"code":30,"key":"KEY_A","event":"press"}
{"timestamp":1.5,"code":30,"key":"KEY_A","event":"press","extra":true}
`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

	res, err := Verify(path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Valid)
	assert.Equal(t, 5, res.Invalid)
	require.Len(t, res.Errors, 5)
	assert.Equal(t, 2, res.Errors[0].Line)
}

func TestVerifyFlagsOversizedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystrokes.jsonl")
	valid := `{"timestamp":1.5,"code":30,"key":"KEY_A","event":"press"}`
	lines := valid + "\n" + strings.Repeat("x", 70*1024) + "\n" + valid + "\n"
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

	res, err := Verify(path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Valid)
	assert.Equal(t, 1, res.Invalid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Line)
}

func TestVerifyMissingFile(t *testing.T) {
	_, err := Verify(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.ErrorIs(t, err, ErrNoJournal)
}
