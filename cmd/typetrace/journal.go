package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"typetrace/internal/journal"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal maintenance commands",
	}
	cmd.AddCommand(newJournalVerifyCmd())
	return cmd
}

func newJournalVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [path]",
		Short: "Validate every journal line against the record schema",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runJournalVerify,
	}
}

func runJournalVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Journal.Path
	if len(args) == 1 {
		path = args[0]
	}

	result, err := journal.Verify(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d valid, %d invalid\n", path, result.Valid, result.Invalid)
	for _, lineErr := range result.Errors {
		fmt.Fprintf(out, "  line %d: %s\n", lineErr.Line, lineErr.Err)
	}
	if result.Invalid > 0 {
		return fmt.Errorf("journal has %d invalid lines", result.Invalid)
	}
	return nil
}
