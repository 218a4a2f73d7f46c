package main

import (
	"github.com/spf13/cobra"

	"typetrace/internal/config"
	"typetrace/internal/logging"
)

var (
	flagConfig   string
	flagJournal  string
	flagLogLevel string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typetrace",
		Short: "Keystroke capture and typing analysis",
		Long: `typetrace records raw keyboard events from /dev/input into an
append-only JSONL journal and derives typing statistics (speed, error
rate, key-transition latency) from it.

Reading input devices requires membership in the "input" group.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/typetrace/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", "", "journal file override")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newDevicesCmd())
	rootCmd.AddCommand(newCaptureCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newJournalCmd())

	return rootCmd
}

// loadConfig loads the config file, applies global flag overrides, and
// installs the configured logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagJournal != "" {
		cfg.Journal.Path = flagJournal
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logCfg, err := cfg.LoggerConfig()
	if err != nil {
		return nil, err
	}
	logging.SetDefault(logging.New(logCfg))
	return cfg, nil
}
