package ai

import (
	"github.com/freeeve/kingdom-ai/pkg/battle"
	"github.com/freeeve/kingdom-ai/pkg/world"
)

// Passive never acts on the map and skips every battle turn.
type Passive struct{}

func (Passive) Name() string { return "passive" }

func (Passive) KingdomTurn(*world.Kingdom) {}

func (Passive) CastleTurn(*world.Castle, bool) {}

func (Passive) BattleTurn(_ *battle.Arena, unit *battle.Unit) battle.Actions {
	if unit == nil || !unit.IsValid() {
		return nil
	}
	return battle.Actions{battle.NewSkip(unit.UID)}
}

func (Passive) HeroesTurn([]*world.Hero) bool { return false }

func (Passive) RevealFog(*world.Tile) {}

func (Passive) HeroesPreBattle(*world.Hero, bool) {}

func (Passive) HeroesActionComplete(*world.Hero) {}

func (Passive) ResetPathfinder() {}
