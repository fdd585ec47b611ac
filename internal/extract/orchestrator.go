package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/veruslab/harvest/internal/heuristic"
	"github.com/veruslab/harvest/internal/isolate"
	"github.com/veruslab/harvest/internal/snippet"
	"github.com/veruslab/harvest/internal/verus"
)

// Orchestrator composes the heuristic, the isolator and the verifier into a
// per-file extraction attempt. It owns the isolated unit's lifecycle: every
// unit it builds is destroyed before Attempt returns, on every path.
type Orchestrator struct {
	vocab    heuristic.Vocabulary
	verifier verus.Verifier
}

// NewOrchestrator creates an Orchestrator with the given marker vocabulary
// and verifier.
func NewOrchestrator(vocab heuristic.Vocabulary, verifier verus.Verifier) *Orchestrator {
	return &Orchestrator{vocab: vocab, verifier: verifier}
}

// Attempt runs the extraction state machine for one source file and returns
// its classified record. Per-file failures never propagate: unreadable
// sources, allocation failures and verifier launch failures all downgrade to
// an error record so the batch continues.
func (o *Orchestrator) Attempt(ctx context.Context, path string) Record {
	data, err := os.ReadFile(path)
	if err != nil {
		return errorRecord(path, fmt.Sprintf("read source: %v", err), []string{})
	}
	text := string(data)

	if !o.vocab.Contains(text) {
		return Record{
			SourcePath:   path,
			Status:       StatusSkipped,
			Message:      MessageNoTokens,
			Dependencies: []string{},
		}
	}

	sn := snippet.Snippet{
		Source:       path,
		Text:         text,
		TokenScore:   o.vocab.Score(text),
		Dependencies: snippet.Dependencies(text),
	}

	unit, err := isolate.Build(sn.Text)
	if err != nil {
		return errorRecord(path, fmt.Sprintf("isolate snippet: %v", err), sn.Dependencies)
	}
	defer unit.Cleanup()

	inv, err := o.verifier.Verify(ctx, unit.EntryFile)
	if err != nil {
		return errorRecord(path, fmt.Sprintf("invoke verifier: %v", err), sn.Dependencies)
	}

	return classify(sn, inv)
}

// classify maps a completed or timed-out invocation onto a record.
func classify(sn snippet.Snippet, inv verus.Invocation) Record {
	ms := inv.Duration.Milliseconds()
	rec := Record{
		SourcePath:   sn.Source,
		Dependencies: sn.Dependencies,
		VerifyTimeMS: &ms,
	}

	switch {
	case inv.TimedOut:
		rec.Status = StatusTimeout
		rec.Message = MessageTimeout
	case inv.ExitCode == 0:
		rec.Status = StatusVerified
		rec.Message = fmt.Sprintf("verified with score=%d", sn.TokenScore)
		rec.Code = sn.Text
	default:
		rec.Status = StatusFailed
		rec.Message = failureMessage(inv)
	}

	return rec
}

// failureMessage prefers stderr, falls back to stdout, and keeps the record's
// message non-empty even for a silent verifier.
func failureMessage(inv verus.Invocation) string {
	if msg := strings.TrimSpace(inv.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(inv.Stdout); msg != "" {
		return msg
	}
	return fmt.Sprintf("verifier exited with code %d", inv.ExitCode)
}

func errorRecord(path, message string, deps []string) Record {
	return Record{
		SourcePath:   path,
		Status:       StatusError,
		Message:      message,
		Dependencies: deps,
	}
}
