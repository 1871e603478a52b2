package cards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugout-tcg/client/internal/game"
)

const sampleCatalog = `cards:
  - id: player-ace
    name: Ace Pitcher
    cardType: Player
    description: Throws heat.
  - id: item-glove
    name: Golden Glove
    cardType: Item
  - id: base-stadium
    name: Home Stadium
    cardType: Base
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	cat, err := Load(writeCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	e := cat.Lookup("player-ace")
	assert.Equal(t, "Ace Pitcher", e.Name)
	assert.Equal(t, "Player", e.CardType)

	all := cat.All()
	require.Len(t, all, 3)
	assert.Equal(t, "base-stadium", all[0].ID, "sorted by id")
}

func TestLookupUnknownDegrades(t *testing.T) {
	cat, err := Load(writeCatalog(t))
	require.NoError(t, err)

	e := cat.Lookup("brand-new-card")
	assert.Equal(t, "brand-new-card", e.ID)
	assert.Equal(t, "brand-new-card", e.Name)
}

func TestDisplayName(t *testing.T) {
	cat, err := Load(writeCatalog(t))
	require.NoError(t, err)

	// Server-provided name wins.
	withName := &game.CardInstance{DefinitionID: "player-ace", Name: "Promo Ace"}
	assert.Equal(t, "Promo Ace", cat.DisplayName(withName))

	fromCatalog := &game.CardInstance{DefinitionID: "item-glove"}
	assert.Equal(t, "Golden Glove", cat.DisplayName(fromCatalog))

	unknown := &game.CardInstance{DefinitionID: "mystery"}
	assert.Equal(t, "mystery", cat.DisplayName(unknown))

	assert.Empty(t, cat.DisplayName(nil))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("cards: {not a list"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}
