// Package isolate builds ephemeral single-snippet crates for verification.
package isolate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// dirPrefix names the temporary crate directories so stray leftovers
	// from crashed runs are recognizable.
	dirPrefix = "verus_extract_"

	// verusBlockOpener is the syntactic wrapper the verifier requires
	// around annotated code.
	verusBlockOpener = "verus!"
)

// cargoManifest is the minimal project descriptor declaring the verifier
// library as the sole dependency.
const cargoManifest = `[package]
name = "verus_extract"
version = "0.1.0"
edition = "2021"

[dependencies]
verus = "*"
`

// Unit is a self-contained crate holding exactly one snippet. It lives for a
// single verification attempt; the caller that built it must call Cleanup on
// every exit path.
type Unit struct {
	// ID uniquely identifies this unit within and across runs.
	ID string

	// Dir is the crate root directory.
	Dir string

	// EntryFile is the path to src/lib.rs inside the crate.
	EntryFile string
}

// Build writes snippetText into a fresh, collision-free crate directory.
// If the snippet does not already contain a verus! block the whole body is
// wrapped in one. Concurrent calls with identical content never collide.
func Build(snippetText string) (*Unit, error) {
	id := uuid.New().String()

	dir, err := os.MkdirTemp("", dirPrefix+id[:8]+"_")
	if err != nil {
		return nil, fmt.Errorf("allocate isolation dir: %w", err)
	}

	unit := &Unit{
		ID:        id,
		Dir:       dir,
		EntryFile: filepath.Join(dir, "src", "lib.rs"),
	}

	if err := os.MkdirAll(filepath.Dir(unit.EntryFile), 0755); err != nil {
		unit.Cleanup()
		return nil, fmt.Errorf("create src dir: %w", err)
	}

	body := snippetText
	if !strings.Contains(body, verusBlockOpener) {
		body = fmt.Sprintf("verus! {\n%s\n}\n", body)
	}
	if err := os.WriteFile(unit.EntryFile, []byte(body), 0644); err != nil {
		unit.Cleanup()
		return nil, fmt.Errorf("write entry file: %w", err)
	}

	manifestPath := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(manifestPath, []byte(cargoManifest), 0644); err != nil {
		unit.Cleanup()
		return nil, fmt.Errorf("write crate manifest: %w", err)
	}

	return unit, nil
}

// Cleanup removes the unit's directory tree. It is safe to call more than
// once; removal errors are ignored the same way a best-effort rmtree would.
func (u *Unit) Cleanup() {
	if u.Dir != "" {
		_ = os.RemoveAll(u.Dir)
	}
}
