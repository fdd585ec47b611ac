package heuristic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary_Contains(t *testing.T) {
	vocab := Default()

	t.Run("empty text has no markers", func(t *testing.T) {
		assert.False(t, vocab.Contains(""))
	})

	t.Run("plain rust has no markers", func(t *testing.T) {
		assert.False(t, vocab.Contains("fn main() { println!(\"hi\"); }"))
	})

	t.Run("detects verus block opener", func(t *testing.T) {
		assert.True(t, vocab.Contains("verus! {\nfn id(x: u64) -> u64 { x }\n}"))
	})

	t.Run("detects contract keywords", func(t *testing.T) {
		assert.True(t, vocab.Contains("fn inc(x: u64) -> u64\n    requires x < 100\n"))
		assert.True(t, vocab.Contains("ensures result == x + 1"))
		assert.True(t, vocab.Contains("#[verus::trusted]"))
	})

	t.Run("markers match as substrings", func(t *testing.T) {
		// "spec" occurs inside "special", which is how the heuristic works:
		// cheap substring triage, false positives allowed.
		assert.True(t, vocab.Contains("let special = 1;"))
	})
}

func TestVocabulary_Score(t *testing.T) {
	vocab := Default()

	t.Run("empty text scores zero", func(t *testing.T) {
		assert.Equal(t, 0, vocab.Score(""))
	})

	t.Run("counts every occurrence", func(t *testing.T) {
		text := "requires a\nrequires b\nensures c\n"
		assert.Equal(t, 3, vocab.Score(text))
	})

	t.Run("overlapping vocabulary entries each count", func(t *testing.T) {
		// "verus! {" contains the "verus!" marker once.
		assert.Equal(t, 1, vocab.Score("verus! {"))
	})
}

func TestNewVocabulary(t *testing.T) {
	t.Run("drops empty markers", func(t *testing.T) {
		vocab := NewVocabulary([]string{"requires", "", "ensures"})
		assert.Equal(t, []string{"requires", "ensures"}, vocab.Markers())
	})

	t.Run("substituted vocabulary is honored", func(t *testing.T) {
		vocab := NewVocabulary([]string{"theorem"})
		assert.True(t, vocab.Contains("theorem add_comm"))
		assert.False(t, vocab.Contains("requires x > 0"))
		assert.Equal(t, 2, vocab.Score("theorem a\ntheorem b\n"))
	})

	t.Run("markers returns a copy", func(t *testing.T) {
		vocab := NewVocabulary([]string{"requires"})
		markers := vocab.Markers()
		markers[0] = "mutated"
		assert.True(t, vocab.Contains("requires x"))
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("loads markers from yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocab.yaml")
		content := "markers:\n  - requires\n  - ensures\n  - theorem\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		vocab, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"requires", "ensures", "theorem"}, vocab.Markers())
		assert.True(t, vocab.Contains("theorem foo"))
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocab.yaml")
		require.NoError(t, os.WriteFile(path, []byte("markers: [unclosed"), 0644))

		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("empty marker list returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocab.yaml")
		require.NoError(t, os.WriteFile(path, []byte("markers: []\n"), 0644))

		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}
