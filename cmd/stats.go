package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/veruslab/harvest/internal/extract"
	"github.com/veruslab/harvest/internal/manifest"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [manifest]",
		Short: "Summarize a previously written manifest",
		Long: `Stats reads an existing manifest.jsonl and prints per-status counts
and the total verifier time. Without an argument it looks in the default
output directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	path := filepath.Join("extracted_snippets", manifest.DefaultName)
	if len(args) == 1 {
		path = args[0]
	}

	records, err := manifest.Read(path)
	if err != nil {
		return err
	}

	stats := manifest.Summarize(records)
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Manifest: %s\n", path)
	_, _ = fmt.Fprintf(out, "Records:  %d\n", stats.Total)
	for _, status := range []extract.Status{
		extract.StatusVerified,
		extract.StatusFailed,
		extract.StatusTimeout,
		extract.StatusSkipped,
		extract.StatusError,
	} {
		_, _ = fmt.Fprintf(out, "  %-9s %d\n", string(status)+":", stats.Counts[status])
	}
	_, _ = fmt.Fprintf(out, "Verifier time: %s\n", stats.VerifyTime.Round(time.Millisecond))

	return nil
}
