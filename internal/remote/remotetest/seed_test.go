package remotetest

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
me:
  id: u1
  name: Jacques
  about: Explorer
  avatar: https://example.com/me.jpg
users:
  - id: u2
    name: Ada
cards:
  - id: c1
    name: Peaks
    link: https://example.com/peaks.jpg
    owner: u2
    likes: [u1, u2]
  - id: c2
    name: Lake
    link: https://example.com/lake.jpg
`

func TestLoadSeed(t *testing.T) {
	memFs := afero.NewMemMapFs()

	t.Run("decodes users and cards", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(memFs, "seed.yaml", []byte(seedYAML), 0644))

		seed, err := LoadSeed(memFs, "seed.yaml")
		require.NoError(t, err)

		assert.Equal(t, "Jacques", seed.Me.Name)
		require.Len(t, seed.Cards, 2)
		assert.Equal(t, []string{"u1", "u2"}, seed.Cards[0].Likes)

		s := NewFromSeed("token", seed)
		card, ok := s.Card("c2")
		require.True(t, ok)
		assert.Equal(t, "u1", card.Owner, "owner should default to the signed-in user")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeed(memFs, "nope.yaml")
		assert.Error(t, err)
	})

	t.Run("missing me.id", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(memFs, "bad.yaml", []byte("me:\n  name: x\n"), 0644))
		_, err := LoadSeed(memFs, "bad.yaml")
		assert.ErrorContains(t, err, "me.id is required")
	})
}
