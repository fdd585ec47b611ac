package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veruslab/harvest/internal/manifest"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// writeStub creates an executable shell script standing in for the verifier.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "verus-stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestRootCmd(t *testing.T) {
	t.Run("dry run lists discovered files", func(t *testing.T) {
		repo := writeRepo(t, map[string]string{
			"a.rs": "requires x > 0\n",
			"b.rs": "fn plain() {}\n",
		})

		stdout, stderr, err := execute(t, "--repo", repo, "--dry-run")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.Len(t, lines, 2)
		assert.Contains(t, stderr, "[dry-run] 2 files")
	})

	t.Run("end to end run writes the manifest", func(t *testing.T) {
		repo := writeRepo(t, map[string]string{
			"a.rs": "requires x > 0\n",
			"b.rs": "fn plain() {}\n",
		})
		stub := writeStub(t, "exit 0\n")
		outDir := filepath.Join(t.TempDir(), "out")

		stdout, _, err := execute(t,
			"--repo", repo,
			"--out", outDir,
			"--verifier", stub,
			"--quiet",
		)
		require.NoError(t, err)

		records, err := manifest.Read(filepath.Join(outDir, manifest.DefaultName))
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, 2, strings.Count(stdout, "\n"))
	})

	t.Run("limit flag caps processed files", func(t *testing.T) {
		repo := writeRepo(t, map[string]string{
			"a.rs": "requires x > 0\n",
			"b.rs": "requires y > 0\n",
			"c.rs": "requires z > 0\n",
		})
		stub := writeStub(t, "exit 0\n")
		outDir := filepath.Join(t.TempDir(), "out")

		_, _, err := execute(t,
			"--repo", repo,
			"--out", outDir,
			"--verifier", stub,
			"--limit", "2",
			"--quiet",
		)
		require.NoError(t, err)

		records, err := manifest.Read(filepath.Join(outDir, manifest.DefaultName))
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("missing verifier surfaces as an error", func(t *testing.T) {
		repo := writeRepo(t, map[string]string{"a.rs": "requires x > 0\n"})

		_, _, err := execute(t,
			"--repo", repo,
			"--out", filepath.Join(t.TempDir(), "out"),
			"--verifier", "definitely-not-a-real-verifier-binary",
			"--quiet",
		)
		assert.Error(t, err)
	})
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "harvest v"+Version+"\n", stdout)
}
