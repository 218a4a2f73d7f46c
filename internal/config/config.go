// Package config handles configuration loading and validation for typetrace.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"typetrace/internal/logging"
	"typetrace/internal/session"
	"typetrace/internal/stats"
)

// Config holds the complete tool configuration.
type Config struct {
	Journal  JournalConfig  `toml:"journal"`
	Capture  CaptureConfig  `toml:"capture"`
	Analysis AnalysisConfig `toml:"analysis"`
	Logging  LoggingConfig  `toml:"logging"`
}

// JournalConfig locates the keystroke journal.
type JournalConfig struct {
	// Path is the JSONL journal file.
	Path string `toml:"path"`
}

// CaptureConfig tunes the capture process.
type CaptureConfig struct {
	// Device pins capture to a specific device node. Empty means
	// auto-select.
	Device string `toml:"device"`

	// NonInteractive suppresses the device selection prompt even on a TTY.
	NonInteractive bool `toml:"non_interactive"`

	// Verbose echoes every captured event to stdout.
	Verbose bool `toml:"verbose"`
}

// AnalysisConfig tunes the statistics engine.
type AnalysisConfig struct {
	// SessionGapSec is the inactivity threshold that closes a session.
	SessionGapSec float64 `toml:"session_gap_sec"`

	// DigraphCutoffSec is the largest in-session press-to-press latency
	// sampled as a digraph.
	DigraphCutoffSec float64 `toml:"digraph_cutoff_sec"`

	// MinDigraphSamples is the minimum sample count for ranked digraphs.
	MinDigraphSamples int `toml:"min_digraph_samples"`

	// TopN bounds the ranked tables in the human report.
	TopN int `toml:"top_n"`
}

// LoggingConfig tunes diagnostic output.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Path: filepath.Join(dataDir(), "keystrokes.jsonl"),
		},
		Analysis: AnalysisConfig{
			SessionGapSec:     session.DefaultGapSeconds,
			DigraphCutoffSec:  stats.DefaultOptions().DigraphCutoffSeconds,
			MinDigraphSamples: stats.DefaultOptions().MinDigraphSamples,
			TopN:              stats.DefaultOptions().TopN,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// dataDir resolves the per-user data directory, honoring XDG_DATA_HOME.
func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "typetrace")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "typetrace"
	}
	return filepath.Join(home, ".local", "share", "typetrace")
}

// configDir resolves the per-user config directory, honoring XDG_CONFIG_HOME.
func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "typetrace")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "typetrace"
	}
	return filepath.Join(home, ".config", "typetrace")
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error: defaults apply. Environment
// overrides are applied after the file, and the result is validated.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.applyEnvOverrides()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnvOverrides applies TYPETRACE_* environment variables on top of the
// file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TYPETRACE_JOURNAL"); v != "" {
		c.Journal.Path = v
	}
	if v := os.Getenv("TYPETRACE_DEVICE"); v != "" {
		c.Capture.Device = v
	}
	if v := os.Getenv("TYPETRACE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TYPETRACE_SESSION_GAP"); v != "" {
		if gap, err := strconv.ParseFloat(v, 64); err == nil {
			c.Analysis.SessionGapSec = gap
		}
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Journal.Path == "" {
		return errors.New("journal.path must not be empty")
	}
	if c.Analysis.SessionGapSec <= 0 {
		return errors.New("analysis.session_gap_sec must be positive")
	}
	if c.Analysis.DigraphCutoffSec <= 0 {
		return errors.New("analysis.digraph_cutoff_sec must be positive")
	}
	if c.Analysis.MinDigraphSamples < 1 {
		return errors.New("analysis.min_digraph_samples must be at least 1")
	}
	if c.Analysis.TopN < 1 {
		return errors.New("analysis.top_n must be at least 1")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}
	return nil
}

// StatsOptions converts the analysis section to engine options.
func (c *Config) StatsOptions() stats.Options {
	return stats.Options{
		DigraphCutoffSeconds: c.Analysis.DigraphCutoffSec,
		MinDigraphSamples:    c.Analysis.MinDigraphSamples,
		TopN:                 c.Analysis.TopN,
	}
}

// LoggerConfig converts the logging section to a logging configuration.
func (c *Config) LoggerConfig() (*logging.Config, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.Logging.Format)
	if err != nil {
		return nil, err
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Format = format
	return cfg, nil
}
