// Package verus provides invocation of the external Verus verifier.
package verus

import (
	"context"
	"time"
)

// Invocation is the tagged outcome of a single verifier run. Exactly one of
// the two shapes applies: either the process completed (TimedOut is false and
// ExitCode/Stdout/Stderr are meaningful) or it hit the wall-clock bound
// (TimedOut is true).
type Invocation struct {
	// TimedOut reports that the process did not complete within the bound.
	TimedOut bool

	// ExitCode is the process exit status. Only meaningful when the
	// invocation completed.
	ExitCode int

	// Stdout is the captured standard output text.
	Stdout string

	// Stderr is the captured standard error text.
	Stderr string

	// Duration is the wall-clock time the invocation took.
	Duration time.Duration
}

// Verifier runs the external verification tool against one isolated entry
// file. A non-zero exit is a normal, classifiable outcome, not an error;
// the error return is reserved for failures to run the tool at all.
type Verifier interface {
	Verify(ctx context.Context, entryFile string) (Invocation, error)
}
