// Package discover enumerates candidate source files under a repository root.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultIgnoreDirs are directory names excluded from traversal: build
// artifacts, test and example trees, vendored code and VCS metadata.
var DefaultIgnoreDirs = []string{"target", "tests", "examples", "benches", "docs", "vendor", ".git"}

// Options configure a Finder.
type Options struct {
	// Extension is the source-file extension to collect, including the dot.
	Extension string

	// IgnoreDirs lists directory-name components to exclude. When nil,
	// DefaultIgnoreDirs is used.
	IgnoreDirs []string

	// IgnorePatterns are additional glob patterns matched against the
	// slash-separated path relative to the root, e.g. "generated/**".
	IgnorePatterns []string
}

// Finder walks a directory tree and returns matching files in deterministic
// order. It has no side effects.
type Finder struct {
	root        string
	extension   string
	ignoreDirs  map[string]bool
	ignoreGlobs []glob.Glob
}

// NewFinder creates a Finder for the given root. It fails if any ignore
// pattern does not compile.
func NewFinder(root string, opts Options) (*Finder, error) {
	extension := opts.Extension
	if extension == "" {
		extension = ".rs"
	}

	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}
	dirSet := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		dirSet[d] = true
	}

	globs := make([]glob.Glob, 0, len(opts.IgnorePatterns))
	for _, pattern := range opts.IgnorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	return &Finder{
		root:        root,
		extension:   extension,
		ignoreDirs:  dirSet,
		ignoreGlobs: globs,
	}, nil
}

// Find returns every file under the root with the configured extension,
// excluding ignored directories and patterns, sorted lexicographically.
func (f *Finder) Find() ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != f.root && f.ignoreDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), f.extension) {
			return nil
		}

		relPath, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		if f.ignored(filepath.ToSlash(relPath)) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", f.root, err)
	}

	sort.Strings(files)
	return files, nil
}

// ignored checks the relative path against the configured glob patterns.
func (f *Finder) ignored(relPath string) bool {
	for _, g := range f.ignoreGlobs {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}
