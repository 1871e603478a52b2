// Package cards maps card definition ids to display metadata. The
// server only ships definition ids inside snapshots; names and
// descriptions come from a local catalog file.
package cards

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dugout-tcg/client/internal/game"
)

// CatalogFile represents the top-level YAML structure.
type CatalogFile struct {
	Cards []Entry `yaml:"cards"`
}

// Entry is the display metadata for one card definition.
type Entry struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	CardType    string `yaml:"cardType" json:"cardType"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Catalog is an immutable id → entry index.
type Catalog struct {
	byID map[string]Entry
}

// Load parses a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	byID := make(map[string]Entry, len(cf.Cards))
	for _, e := range cf.Cards {
		byID[e.ID] = e
	}
	return &Catalog{byID: byID}, nil
}

// Empty returns a catalog with no entries; every lookup degrades to
// the raw definition id.
func Empty() *Catalog {
	return &Catalog{byID: map[string]Entry{}}
}

// Lookup returns the entry for a definition id. Unknown ids degrade to
// a bare entry rather than an error: the server may know newer cards
// than the local catalog.
func (c *Catalog) Lookup(defID string) Entry {
	if e, ok := c.byID[defID]; ok {
		return e
	}
	return Entry{ID: defID, Name: defID}
}

// DisplayName picks the best available name for a card instance: the
// server-provided name, then the catalog name, then the raw id.
func (c *Catalog) DisplayName(card *game.CardInstance) string {
	if card == nil {
		return ""
	}
	if card.Name != "" {
		return card.Name
	}
	return c.Lookup(card.DefinitionID).Name
}

// All returns every entry sorted by id.
func (c *Catalog) All() []Entry {
	entries := make([]Entry, 0, len(c.byID))
	for _, e := range c.byID {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Len returns the number of known definitions.
func (c *Catalog) Len() int { return len(c.byID) }
