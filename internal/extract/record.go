// Package extract orchestrates per-file snippet extraction and classification.
package extract

import (
	"encoding/json"
	"fmt"
)

// Status classifies the terminal outcome of one extraction attempt.
type Status string

const (
	// StatusSkipped means no heuristic marker was found. Not an error.
	StatusSkipped Status = "skipped"
	// StatusVerified means the verifier exited with code 0.
	StatusVerified Status = "verified"
	// StatusFailed means the verifier completed with a non-zero exit.
	StatusFailed Status = "failed"
	// StatusTimeout means the verifier did not complete within the bound.
	StatusTimeout Status = "timeout"
	// StatusError means infrastructure failed for this file (unreadable
	// source, isolation allocation failure). The batch continues.
	StatusError Status = "error"
)

// validStatuses is the set of valid record statuses.
var validStatuses = map[Status]bool{
	StatusSkipped:  true,
	StatusVerified: true,
	StatusFailed:   true,
	StatusTimeout:  true,
	StatusError:    true,
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// Fixed marker messages for outcomes without diagnostic text.
const (
	MessageNoTokens = "no_verus_tokens"
	MessageTimeout  = "verification_timeout"
)

// Record is the classified result of one extraction attempt. One record is
// produced per processed file; records are streamed as they complete and
// persisted together in the manifest.
type Record struct {
	// SourcePath is the file the snippet was read from.
	SourcePath string `json:"source_path"`

	// Status is the terminal classification.
	Status Status `json:"status"`

	// Message explains the outcome and is always non-empty: a score
	// confirmation for verified, captured diagnostics for failed, fixed
	// markers for skipped and timeout.
	Message string `json:"message"`

	// Dependencies lists the snippet's use targets in appearance order.
	Dependencies []string `json:"dependencies"`

	// VerifyTimeMS is the verifier wall-clock time in milliseconds.
	// Nil when no invocation happened (skipped, error).
	VerifyTimeMS *int64 `json:"verify_time_ms"`

	// Code holds the original snippet text for verified records only.
	// It is carried in memory for downstream corpus consumers and is not
	// part of the manifest line format.
	Code string `json:"-"`
}

// JSONLine encodes the record as a single manifest line, without a trailing
// newline. Dependencies always encode as an array, never null.
func (r Record) JSONLine() (string, error) {
	if r.Dependencies == nil {
		r.Dependencies = []string{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode record for %s: %w", r.SourcePath, err)
	}
	return string(data), nil
}
