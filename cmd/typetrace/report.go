package main

import (
	"github.com/spf13/cobra"

	"typetrace/internal/stats"
)

var (
	reportToday bool
	reportWeek  bool
	reportFrom  string
	reportTo    string
	reportJSON  bool
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a human-readable typing report",
		Long: `Report renders the analysis as a formatted text report. Unlike
analyze, an empty window is treated as an error so scripted consumers can
tell "nothing captured" apart from "all zeros".`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	cmd.Flags().BoolVar(&reportToday, "today", false, "only today's data")
	cmd.Flags().BoolVar(&reportWeek, "week", false, "only the past 7 days")
	cmd.Flags().StringVar(&reportFrom, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reportTo, "to", "", "end date, exclusive (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&reportJSON, "json", false, "emit the raw report as JSON")

	cmd.MarkFlagsMutuallyExclusive("today", "week", "from")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	from, to, err := timeWindow(reportFrom, reportTo, reportToday, reportWeek)
	if err != nil {
		return err
	}

	report, err := buildReport(cfg.Journal.Path, from, to, cfg.Analysis.SessionGapSec, cfg)
	if err != nil {
		return err
	}
	if report.TotalEvents == 0 {
		return errNoData
	}

	if reportJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return stats.Render(cmd.OutOrStdout(), report)
}
