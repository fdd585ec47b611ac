// Package cmd implements the harvest command-line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/veruslab/harvest/internal/config"
	"github.com/veruslab/harvest/internal/run"
)

var cfgFile string

// Root command flags
var (
	rootRepo        string
	rootOut         string
	rootLimit       int
	rootTimeout     int
	rootConcurrency int
	rootVerifier    string
	rootVocab       string
	rootDryRun      bool
	rootQuiet       bool
)

// NewRootCmd creates the root command for the harvest CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Extract and verify Verus-annotated snippets from a repository",
		Long: `Harvest scans a source tree for Verus/verification-annotated Rust files,
isolates each candidate into a minimal crate, runs the external Verus
verifier against it under a timeout, and classifies the outcome.

Each processed file produces one JSON record, streamed to stdout as it
completes and persisted together as manifest.jsonl in the output
directory. The manifest doubles as a training corpus for downstream
fine-tuning and evaluation tooling.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runRoot,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: <repo>/harvest.yaml)")
	rootCmd.Flags().StringVar(&rootRepo, "repo", ".", "path to the repository root to scan")
	rootCmd.Flags().StringVar(&rootOut, "out", "", "output directory for the manifest (default: ./extracted_snippets)")
	rootCmd.Flags().IntVar(&rootLimit, "limit", 0, "cap on number of files processed after sorting (0 = unlimited)")
	rootCmd.Flags().IntVar(&rootTimeout, "timeout", config.DefaultTimeoutSeconds, "per-file verification timeout in seconds")
	rootCmd.Flags().IntVarP(&rootConcurrency, "concurrency", "j", 0, "files verified in parallel (0 uses config, default sequential)")
	rootCmd.Flags().StringVar(&rootVerifier, "verifier", "", "verifier executable name or path (default: verus)")
	rootCmd.Flags().StringVar(&rootVocab, "vocab", "", "YAML file replacing the built-in marker vocabulary")
	rootCmd.Flags().BoolVar(&rootDryRun, "dry-run", false, "list files that would be processed without verifying")
	rootCmd.Flags().BoolVarP(&rootQuiet, "quiet", "q", false, "suppress banner, progress bar and summary")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithFile(rootRepo, cfgFile)
	if err != nil {
		return err
	}

	// Flags override file configuration only when explicitly set.
	if cmd.Flags().Changed("timeout") {
		cfg.Verifier.TimeoutSeconds = rootTimeout
	}
	if rootVerifier != "" {
		cfg.Verifier.Command = rootVerifier
	}
	if rootVocab != "" {
		cfg.Scan.VocabularyFile = rootVocab
	}

	opts := run.Options{
		Repo:        rootRepo,
		OutDir:      rootOut,
		Limit:       rootLimit,
		Concurrency: rootConcurrency,
		DryRun:      rootDryRun,
		Quiet:       rootQuiet,
	}

	return run.Run(cmd.Context(), cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
