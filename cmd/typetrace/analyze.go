package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"typetrace/internal/config"
	"typetrace/internal/journal"
	"typetrace/internal/logging"
	"typetrace/internal/session"
	"typetrace/internal/stats"
)

var (
	analyzeFrom    string
	analyzeTo      string
	analyzeGap     float64
	analyzeJSON    bool
	analyzeOutFile string
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute typing statistics from the journal",
		Long: `Analyze replays the journal, segments it into typing sessions, and
computes aggregate statistics. An empty or missing window yields a
zero-valued report, not an error.`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeFrom, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&analyzeTo, "to", "", "end date, exclusive (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&analyzeGap, "session-gap", 0, "inactivity seconds that close a session (default from config)")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the raw report as JSON")
	cmd.Flags().StringVarP(&analyzeOutFile, "output", "o", "", "write output to a file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	from, to, err := timeWindow(analyzeFrom, analyzeTo, false, false)
	if err != nil {
		return err
	}

	report, err := buildReport(cfg.Journal.Path, from, to, sessionGap(cfg.Analysis.SessionGapSec), cfg)
	if err != nil {
		return err
	}

	if analyzeOutFile == "" {
		return renderReport(cmd.OutOrStdout(), report)
	}

	f, err := os.Create(analyzeOutFile)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	// The close error carries delayed write failures; a truncated report
	// must not exit zero.
	if err := renderReport(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderReport(w io.Writer, r *stats.Report) error {
	if analyzeJSON {
		return writeJSON(w, r)
	}
	return stats.Render(w, r)
}

func sessionGap(configured float64) float64 {
	if analyzeGap > 0 {
		return analyzeGap
	}
	return configured
}

// buildReport runs the full analysis path: replay, segment, analyze.
func buildReport(path string, from, to *float64, gap float64, cfg *config.Config) (*stats.Report, error) {
	events, readStats, err := journal.Read(path, from, to)
	if err != nil {
		return nil, err
	}
	if readStats.Corrupt > 0 {
		logging.Warn("journal contained corrupt lines", "skipped", readStats.Corrupt)
	}

	sessions := session.Segment(events, gap)
	return stats.Analyze(events, sessions, cfg.StatsOptions()), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
