package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Contains(t, cfg.Journal.Path, "keystrokes.jsonl")
	assert.Equal(t, 300.0, cfg.Analysis.SessionGapSec)
	assert.Equal(t, 2.0, cfg.Analysis.DigraphCutoffSec)
	assert.Equal(t, 2, cfg.Analysis.MinDigraphSamples)
	assert.Equal(t, 20, cfg.Analysis.TopN)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	// Keep the default config path away from any real user config.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Analysis, cfg.Analysis)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[journal]
path = "/tmp/test-keystrokes.jsonl"

[capture]
non_interactive = true

[analysis]
session_gap_sec = 120.0
top_n = 5

[logging]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test-keystrokes.jsonl", cfg.Journal.Path)
	assert.True(t, cfg.Capture.NonInteractive)
	assert.Equal(t, 120.0, cfg.Analysis.SessionGapSec)
	assert.Equal(t, 5, cfg.Analysis.TopN)
	// Unset analysis keys keep their defaults.
	assert.Equal(t, 2, cfg.Analysis.MinDigraphSamples)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[journal]\npathh = \"/x\"\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown key")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TYPETRACE_JOURNAL", "/tmp/override.jsonl")
	t.Setenv("TYPETRACE_SESSION_GAP", "42.5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.jsonl", cfg.Journal.Path)
	assert.Equal(t, 42.5, cfg.Analysis.SessionGapSec)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty journal path", func(c *Config) { c.Journal.Path = "" }},
		{"zero gap", func(c *Config) { c.Analysis.SessionGapSec = 0 }},
		{"negative cutoff", func(c *Config) { c.Analysis.DigraphCutoffSec = -1 }},
		{"zero min samples", func(c *Config) { c.Analysis.MinDigraphSamples = 0 }},
		{"zero top n", func(c *Config) { c.Analysis.TopN = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestXDGDataHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/share")
	cfg := Default()
	assert.Equal(t, "/custom/share/typetrace/keystrokes.jsonl", cfg.Journal.Path)
}
