package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, DefaultExtension, cfg.Scan.Extension)
		assert.Equal(t, DefaultIgnoreDirs(), cfg.Scan.IgnoreDirs)
		assert.Empty(t, cfg.Scan.IgnorePatterns)
		assert.Equal(t, DefaultVerifierCommand, cfg.Verifier.Command)
		assert.Equal(t, DefaultTimeoutSeconds, cfg.Verifier.TimeoutSeconds)
		assert.Equal(t, DefaultConcurrency, cfg.Verifier.Concurrency)
		assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
		assert.Equal(t, DefaultManifestName, cfg.Output.ManifestName)
	})

	t.Run("reads harvest.yaml from the directory", func(t *testing.T) {
		dir := t.TempDir()
		content := `scan:
  extension: ".vrs"
  ignore_dirs:
    - build
verifier:
  command: verus-nightly
  timeout_seconds: 5
  concurrency: 4
output:
  dir: ./out
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "harvest.yaml"), []byte(content), 0644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, ".vrs", cfg.Scan.Extension)
		assert.Equal(t, []string{"build"}, cfg.Scan.IgnoreDirs)
		assert.Equal(t, "verus-nightly", cfg.Verifier.Command)
		assert.Equal(t, 5, cfg.Verifier.TimeoutSeconds)
		assert.Equal(t, 4, cfg.Verifier.Concurrency)
		assert.Equal(t, "./out", cfg.Output.Dir)
		// Unset keys keep their defaults.
		assert.Equal(t, DefaultManifestName, cfg.Output.ManifestName)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "harvest.yaml"), []byte("scan: [broken"), 0644))

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})
}

func TestLoadConfigFromPath(t *testing.T) {
	t.Run("loads an explicit config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("verifier:\n  timeout_seconds: 90\n"), 0644))

		cfg, err := LoadConfigFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, 90, cfg.Verifier.TimeoutSeconds)
	})

	t.Run("missing explicit file yields defaults", func(t *testing.T) {
		cfg, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultVerifierCommand, cfg.Verifier.Command)
	})
}

func TestLoadConfigWithFile(t *testing.T) {
	t.Run("explicit file takes precedence over directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "harvest.yaml"), []byte("verifier:\n  timeout_seconds: 10\n"), 0644))

		explicit := filepath.Join(t.TempDir(), "other.yaml")
		require.NoError(t, os.WriteFile(explicit, []byte("verifier:\n  timeout_seconds: 20\n"), 0644))

		cfg, err := LoadConfigWithFile(dir, explicit)
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.Verifier.TimeoutSeconds)
	})

	t.Run("falls back to directory lookup", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "harvest.yaml"), []byte("verifier:\n  timeout_seconds: 10\n"), 0644))

		cfg, err := LoadConfigWithFile(dir, "")
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Verifier.TimeoutSeconds)
	})
}
