// Package manifest persists and reads the newline-delimited extraction manifest.
package manifest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/veruslab/harvest/internal/extract"
)

// DefaultName is the manifest file name inside the output directory.
const DefaultName = "manifest.jsonl"

// Write persists all records, one JSON object per line, to a manifest file
// inside dir. Parent directories are created as needed. The manifest is
// written once per run and never mutated afterwards. Returns the manifest
// path.
func Write(dir, name string, records []extract.Record) (string, error) {
	if name == "" {
		name = DefaultName
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create manifest %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		line, err := rec.JSONLine()
		if err != nil {
			return "", err
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return "", fmt.Errorf("write manifest %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flush manifest %s: %w", path, err)
	}

	return path, nil
}

// Read loads every record from a manifest file. Blank lines are skipped;
// a malformed line is an error naming its line number.
func Read(path string) ([]extract.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	records := []extract.Record{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec extract.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parse manifest %s line %d: %w", path, lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	return records, nil
}

// Stats aggregates a set of records for reporting.
type Stats struct {
	// Total is the number of records.
	Total int

	// Counts maps each status to its record count.
	Counts map[extract.Status]int

	// VerifyTime is the summed verifier wall-clock time.
	VerifyTime time.Duration
}

// Summarize computes per-status counts and total verify time.
func Summarize(records []extract.Record) Stats {
	stats := Stats{
		Total:  len(records),
		Counts: make(map[extract.Status]int),
	}
	for _, rec := range records {
		stats.Counts[rec.Status]++
		if rec.VerifyTimeMS != nil {
			stats.VerifyTime += time.Duration(*rec.VerifyTimeMS) * time.Millisecond
		}
	}
	return stats
}
