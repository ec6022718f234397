package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `reactions:
  - keyword: "Bonjour"
    response: "Salut ! Comment ça va ?"
    type: message
  - keyword: "Merci"
    response: "👍"
    type: emoji
`

func TestSeedFromFile(t *testing.T) {
	t.Run("loads rules into an empty store", func(t *testing.T) {
		s := NewMemoryStore()

		require.NoError(t, SeedFromFile(s, writeSeed(t, seedYAML)))

		reactions := mustReactions(t, s)
		require.Len(t, reactions, 2)
		assert.Equal(t, "Bonjour", reactions[0].Keyword)
		assert.Equal(t, TypeMessage, reactions[0].Type)
		assert.Equal(t, "Merci", reactions[1].Keyword)
		assert.Equal(t, TypeEmoji, reactions[1].Type)
	})

	t.Run("is a no-op on a populated store", func(t *testing.T) {
		s := NewMemoryStore()
		_, err := s.CreateReaction("Existing", "rule", TypeMessage)
		require.NoError(t, err)

		require.NoError(t, SeedFromFile(s, writeSeed(t, seedYAML)))
		assert.Len(t, mustReactions(t, s), 1)
	})

	t.Run("skips malformed entries", func(t *testing.T) {
		s := NewMemoryStore()
		bad := `reactions:
  - keyword: "Bonjour"
    response: "Salut !"
    type: message
  - keyword: "Oops"
    response: "nope"
    type: shout
`

		require.NoError(t, SeedFromFile(s, writeSeed(t, bad)))
		assert.Len(t, mustReactions(t, s), 1)
	})

	t.Run("missing file", func(t *testing.T) {
		s := NewMemoryStore()
		assert.Error(t, SeedFromFile(s, filepath.Join(t.TempDir(), "missing.yaml")))
	})
}

// writeSeed drops seed content into a temp file and returns its path
func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reactions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
