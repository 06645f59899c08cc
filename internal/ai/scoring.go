package ai

import (
	"github.com/freeeve/kingdom-ai/pkg/battle"
	"github.com/freeeve/kingdom-ai/pkg/world"
)

// IndexObject is a visible map object and the tile it stands on.
type IndexObject struct {
	Index  int
	Object world.ObjectType
}

// BattleTargetPair is a cell to act from and, optionally, the enemy to
// strike. Cell -1 and a nil unit mean there is nothing to do.
type BattleTargetPair struct {
	Cell int
	Unit *battle.Unit
}

func noTarget() BattleTargetPair {
	return BattleTargetPair{Cell: -1}
}

// SpellSelection is the best spell found so far. An empty Spell means none.
type SpellSelection struct {
	Spell battle.SpellID
	Cell  int
	Value float64
}

// SpellcastOutcome accumulates the value of one spell over its candidate
// targets.
type SpellcastOutcome struct {
	Cell  int
	Value float64
}

func newSpellcastOutcome() SpellcastOutcome {
	return SpellcastOutcome{Cell: -1}
}

// UpdateOutcome folds one candidate into the outcome. Mass effects hit every
// candidate at once, so their values add up and the cell is left alone.
// Single-target effects keep the best candidate and its cell.
func (o SpellcastOutcome) UpdateOutcome(value float64, cell int, mass bool) SpellcastOutcome {
	if mass {
		o.Value += value
		return o
	}
	if value > o.Value {
		o.Value = value
		o.Cell = cell
	}
	return o
}
