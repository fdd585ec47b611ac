// Package run drives a full extraction pass over a repository.
package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/veruslab/harvest/internal/config"
	"github.com/veruslab/harvest/internal/discover"
	"github.com/veruslab/harvest/internal/extract"
	"github.com/veruslab/harvest/internal/heuristic"
	"github.com/veruslab/harvest/internal/manifest"
	"github.com/veruslab/harvest/internal/verus"
	"github.com/veruslab/harvest/internal/worker"
)

// Options configures one extraction run.
type Options struct {
	// Repo is the repository root to scan.
	Repo string

	// OutDir overrides the configured output directory when non-empty.
	OutDir string

	// Limit caps the number of files processed, applied after sorting.
	// Zero means unlimited.
	Limit int

	// Concurrency overrides the configured worker count when positive.
	Concurrency int

	// DryRun lists the files that would be processed without verifying.
	DryRun bool

	// Quiet suppresses the banner, progress bar and summary on stderr.
	// Stdout carries the JSONL progress stream in every mode.
	Quiet bool
}

// Run executes the batch: discover files, process at most Limit of them in
// sorted order, stream one JSON record per file to stdout, and persist the
// manifest. Per-file failures are classified into records; only a missing
// verifier executable or an unwritable output directory abort the run.
func Run(ctx context.Context, cfg *config.Config, opts Options, stdout, stderr io.Writer) error {
	start := time.Now()

	vocab := heuristic.Default()
	if cfg.Scan.VocabularyFile != "" {
		v, err := heuristic.LoadFile(cfg.Scan.VocabularyFile)
		if err != nil {
			return err
		}
		vocab = v
	}

	finder, err := discover.NewFinder(opts.Repo, discover.Options{
		Extension:      cfg.Scan.Extension,
		IgnoreDirs:     cfg.Scan.IgnoreDirs,
		IgnorePatterns: cfg.Scan.IgnorePatterns,
	})
	if err != nil {
		return err
	}

	files, err := finder.Find()
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}
	if opts.Limit > 0 && len(files) > opts.Limit {
		files = files[:opts.Limit]
	}

	if opts.DryRun {
		for _, f := range files {
			_, _ = fmt.Fprintln(stdout, f)
		}
		_, _ = fmt.Fprintf(stderr, "[dry-run] %d files would be processed\n", len(files))
		return nil
	}

	timeout := time.Duration(cfg.Verifier.TimeoutSeconds) * time.Second
	verifier := verus.NewCommandVerifier(cfg.Verifier.Command, timeout)
	if err := verifier.Check(); err != nil {
		return err
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	// Fail before processing rather than after an hour of verification.
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = cfg.Verifier.Concurrency
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	runID := uuid.New().String()[:8]
	if !opts.Quiet {
		_, _ = fmt.Fprintf(stderr, "harvest run %s: %d files, concurrency %d, timeout %s\n",
			runID, len(files), concurrency, timeout)
	}

	var bar *progressbar.ProgressBar
	if !opts.Quiet && len(files) > 0 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("verifying"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(stderr)
			}),
		)
	}

	orch := extract.NewOrchestrator(vocab, verifier)
	records := process(ctx, orch, files, concurrency, stdout, bar)

	manifestPath, err := manifest.Write(outDir, cfg.Output.ManifestName, records)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		_, _ = fmt.Fprintf(stderr, "\n%s", FormatSummary(runID, records, manifestPath, time.Since(start)))
	}

	return nil
}

// attemptJob processes one file at its position in the sorted list.
type attemptJob struct {
	index int
	path  string
	orch  *extract.Orchestrator
}

// attemptResult carries a classified record back with its position.
type attemptResult struct {
	index  int
	record extract.Record
}

func (r attemptResult) Index() int { return r.index }

func (j attemptJob) Execute(ctx context.Context) worker.Result {
	return attemptResult{index: j.index, record: j.orch.Attempt(ctx, j.path)}
}

// process runs every file through the orchestrator and returns the records
// in sorted-path order. With concurrency 1 it is the strictly sequential
// baseline; otherwise files are dispatched to a worker pool and the stream
// is reassembled so both modes emit identical output.
func process(ctx context.Context, orch *extract.Orchestrator, files []string, concurrency int, stdout io.Writer, bar *progressbar.ProgressBar) []extract.Record {
	records := make([]extract.Record, len(files))
	em := newEmitter(stdout, bar)

	if concurrency == 1 {
		for i, path := range files {
			rec := orch.Attempt(ctx, path)
			records[i] = rec
			em.emit(i, rec)
		}
		return records
	}

	pool := worker.NewPool(concurrency)
	pool.Start(ctx)

	go func() {
		for i, path := range files {
			pool.Submit(attemptJob{index: i, path: path, orch: orch})
		}
		pool.Close()
	}()

	for res := range pool.Results() {
		ar := res.(attemptResult)
		records[ar.index] = ar.record
		em.emit(ar.index, ar.record)
	}

	return records
}

// FormatSummary formats the end-of-run summary block.
func FormatSummary(runID string, records []extract.Record, manifestPath string, elapsed time.Duration) string {
	stats := manifest.Summarize(records)

	output := fmt.Sprintf("## Extraction Summary (run %s)\n\n", runID)
	output += fmt.Sprintf("- Files processed: %d\n", stats.Total)
	for _, status := range []extract.Status{
		extract.StatusVerified,
		extract.StatusFailed,
		extract.StatusTimeout,
		extract.StatusSkipped,
		extract.StatusError,
	} {
		if n := stats.Counts[status]; n > 0 {
			output += fmt.Sprintf("- %s: %d\n", status, n)
		}
	}
	if stats.VerifyTime > 0 {
		output += fmt.Sprintf("- Verifier time: %s\n", stats.VerifyTime.Round(time.Millisecond))
	}
	output += fmt.Sprintf("- Elapsed: %s\n", elapsed.Round(time.Millisecond))
	output += fmt.Sprintf("- Manifest: %s\n", manifestPath)

	return output
}
