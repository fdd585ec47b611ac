// Package snippet models a candidate code snippet and its provenance metadata.
package snippet

import (
	"regexp"
)

// useLine matches a `use` declaration at the start of a line and captures the
// dotted/scoped identifier that follows it, e.g. `use vstd::prelude::*` yields
// "vstd::prelude".
var useLine = regexp.MustCompile(`(?m)^use\s+([\w:]+)`)

// Snippet is the raw text of one source file together with the heuristic
// token score and the ordered list of its local dependencies.
type Snippet struct {
	// Source is the path the text was read from.
	Source string

	// Text is the full file content.
	Text string

	// TokenScore is the sum of heuristic marker occurrence counts.
	TokenScore int

	// Dependencies lists the `use` targets in order of appearance,
	// not deduplicated.
	Dependencies []string
}

// Dependencies extracts the `use` targets from text in order of appearance.
// Duplicates are preserved; text without any `use` lines yields an empty
// (non-nil) slice.
func Dependencies(text string) []string {
	deps := []string{}
	for _, match := range useLine.FindAllStringSubmatch(text, -1) {
		deps = append(deps, match[1])
	}
	return deps
}
