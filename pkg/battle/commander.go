package battle

import (
	"slices"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

// Commander leads one side: a hero, or a castle captain that cannot retreat.
type Commander struct {
	Name          string      `yaml:"name" json:"name"`
	Color         world.Color `yaml:"color" json:"color"`
	IsHero        bool        `yaml:"is_hero" json:"is_hero"`
	Level         int         `yaml:"level" json:"level"`
	Artifacts     []string    `yaml:"artifacts" json:"artifacts,omitempty"`
	Power         int         `yaml:"power" json:"power"`
	Attack        int         `yaml:"attack" json:"attack"`
	Defense       int         `yaml:"defense" json:"defense"`
	SpellPoints   int         `yaml:"spell_points" json:"spell_points"`
	Spells        []SpellID   `yaml:"spells" json:"spells,omitempty"`
	CastThisRound bool        `yaml:"-" json:"cast_this_round"`
	Silenced      bool        `yaml:"silenced" json:"silenced"`
}

// HasSpellBook reports whether the commander knows any spell.
func (c *Commander) HasSpellBook() bool {
	return len(c.Spells) > 0
}

// Knows reports whether the spell is in the commander's book.
func (c *Commander) Knows(id SpellID) bool {
	return slices.Contains(c.Spells, id)
}

// CanCast reports whether the commander knows the spell and has the points
// to cast it.
func (c *Commander) CanCast(id SpellID) bool {
	s, ok := SpellByID(id)
	if !ok || !c.Knows(id) {
		return false
	}
	return c.SpellPoints >= s.Cost
}

// KnownSpells returns catalog entries for the commander's book in catalog
// order.
func (c *Commander) KnownSpells() []Spell {
	var out []Spell
	for _, s := range spellCatalog {
		if c.Knows(s.ID) {
			out = append(out, s)
		}
	}
	return out
}
