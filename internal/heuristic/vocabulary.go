// Package heuristic decides whether raw text looks like Verus-annotated code.
package heuristic

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultMarkers are the substrings that signal verification-oriented code.
var defaultMarkers = []string{
	"verus!",
	"#[verus::",
	"requires",
	"ensures",
	"decreases",
	"invariant",
	"ghost",
	"proof",
	"spec",
	"exec",
	"reveal",
	"opens_invariants",
}

// Vocabulary is a fixed set of marker substrings. It is immutable after
// construction so a single instance can be shared across workers.
type Vocabulary struct {
	markers []string
}

// NewVocabulary creates a vocabulary from the given marker substrings.
// Empty markers are dropped.
func NewVocabulary(markers []string) Vocabulary {
	kept := make([]string, 0, len(markers))
	for _, m := range markers {
		if m != "" {
			kept = append(kept, m)
		}
	}
	return Vocabulary{markers: kept}
}

// Default returns the built-in Verus marker vocabulary.
func Default() Vocabulary {
	return NewVocabulary(defaultMarkers)
}

// Markers returns a copy of the marker set.
func (v Vocabulary) Markers() []string {
	out := make([]string, len(v.markers))
	copy(out, v.markers)
	return out
}

// Contains reports whether any marker occurs in text as a substring.
func (v Vocabulary) Contains(text string) bool {
	for _, m := range v.markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// Score returns the sum of occurrence counts of every marker in text.
func (v Vocabulary) Score(text string) int {
	score := 0
	for _, m := range v.markers {
		score += strings.Count(text, m)
	}
	return score
}

// vocabularyFile is the on-disk YAML shape for a custom vocabulary.
type vocabularyFile struct {
	Markers []string `yaml:"markers"`
}

// LoadFile reads a custom marker vocabulary from a YAML file of the form:
//
//	markers:
//	  - requires
//	  - ensures
func LoadFile(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary file: %w", err)
	}

	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary file %s: %w", path, err)
	}

	if len(file.Markers) == 0 {
		return Vocabulary{}, fmt.Errorf("vocabulary file %s declares no markers", path)
	}

	return NewVocabulary(file.Markers), nil
}
