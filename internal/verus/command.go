package verus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultCommand is the verifier executable looked up on PATH.
const DefaultCommand = "verus"

// DefaultTimeout bounds a single verification attempt.
const DefaultTimeout = 30 * time.Second

// CommandVerifier implements Verifier by spawning the verifier executable as
// a child process. The timeout cancels the child; no orphan survives the
// bound. One invocation per snippet, no retries.
type CommandVerifier struct {
	command string
	timeout time.Duration
}

// NewCommandVerifier creates a CommandVerifier for the given executable name
// or path. A non-positive timeout falls back to DefaultTimeout.
func NewCommandVerifier(command string, timeout time.Duration) *CommandVerifier {
	if command == "" {
		command = DefaultCommand
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CommandVerifier{command: command, timeout: timeout}
}

// Check verifies the executable is discoverable. A missing verifier is a
// fatal configuration error for the whole run, so callers should check once
// before processing any files.
func (v *CommandVerifier) Check() error {
	if _, err := exec.LookPath(v.command); err != nil {
		return fmt.Errorf("verifier executable %q not found: %w", v.command, err)
	}
	return nil
}

// Verify runs `<command> --verify --crate-type=lib <entryFile>` under the
// configured wall-clock bound and captures both output streams.
func (v *CommandVerifier) Verify(ctx context.Context, entryFile string) (Invocation, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, v.command, "--verify", "--crate-type=lib", entryFile)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	inv := Invocation{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		inv.TimedOut = true
		return inv, nil
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			inv.ExitCode = exitErr.ExitCode()
			return inv, nil
		}
		return Invocation{}, fmt.Errorf("run %s: %w", v.command, runErr)
	}

	return inv, nil
}

// Ensure CommandVerifier implements Verifier.
var _ Verifier = (*CommandVerifier)(nil)
