package ai

import (
	"github.com/rs/zerolog/log"

	"github.com/freeeve/kingdom-ai/pkg/battle"
	"github.com/freeeve/kingdom-ai/pkg/world"
)

// Strategy decides how a computer-controlled faction plays. The simulation
// drives it once per kingdom turn and once per battle unit turn.
type Strategy interface {
	Name() string
	KingdomTurn(k *world.Kingdom)
	CastleTurn(c *world.Castle, defensive bool)
	BattleTurn(arena *battle.Arena, unit *battle.Unit) battle.Actions
	HeroesTurn(heroes []*world.Hero) bool

	RevealFog(tile *world.Tile)
	HeroesPreBattle(hero *world.Hero, attacking bool)
	HeroesActionComplete(hero *world.Hero)
	ResetPathfinder()
}

// Pathfinder answers route queries on the adventure map. Distances are in
// move points; 0 means unreachable.
type Pathfinder interface {
	Reset()
	Reevaluate(h *world.Hero)
	Distance(target int) uint32
	Path(target int) []int
	DistanceBetween(from, to int, c world.Color, strength float64) uint32
}

// Deps are the collaborators a strategy borrows for a game session.
type Deps struct {
	World      *world.World
	Executor   world.Executor
	Pathfinder Pathfinder
	Rand       *Rand
	Tuning     Tuning
}

// StrategyForDifficulty returns the strategy for a difficulty name.
func StrategyForDifficulty(difficulty string, deps Deps) Strategy {
	switch difficulty {
	case "passive", "none":
		return Passive{}
	case "normal", "":
		return NewNormal(deps)
	default:
		log.Warn().Str("difficulty", difficulty).Msg("Unknown difficulty, using normal")
		return NewNormal(deps)
	}
}
