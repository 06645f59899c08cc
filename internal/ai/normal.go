package ai

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/kingdom-ai/pkg/battle"
	"github.com/freeeve/kingdom-ai/pkg/world"
)

// Normal is the standard computer opponent: it rates map regions by danger,
// funds threatened castles first and sends heroes after the most valuable
// reachable objects.
type Normal struct {
	w       *world.World
	exec    world.Executor
	pf      Pathfinder
	rng     *Rand
	tuning  Tuning
	planner *BattlePlanner

	// turn exists only while KingdomTurn runs.
	turn *kingdomTurn
}

// NewNormal builds the strategy. World, executor, pathfinder and random
// source are required.
func NewNormal(deps Deps) *Normal {
	if deps.World == nil || deps.Executor == nil || deps.Pathfinder == nil || deps.Rand == nil {
		panic("ai: NewNormal requires world, executor, pathfinder and rand")
	}
	tuning := deps.Tuning
	if tuning == (Tuning{}) {
		tuning = DefaultTuning()
	}
	return &Normal{
		w:       deps.World,
		exec:    deps.Executor,
		pf:      deps.Pathfinder,
		rng:     deps.Rand,
		tuning:  tuning,
		planner: NewBattlePlanner(deps.Rand, tuning.Battle),
	}
}

func (n *Normal) Name() string { return "normal" }

// enemyArmy is a hostile hero or garrison seen this turn.
type enemyArmy struct {
	Region   int
	Index    int
	Color    world.Color
	Strength float64
}

// kingdomTurn is the state derived at the start of a kingdom turn and
// dropped when it ends.
type kingdomTurn struct {
	kingdom              *world.Kingdom
	color                world.Color
	regions              []RegionStats
	monsterTotal         []float64
	objects              []IndexObject
	enemyArmies          []enemyArmy
	combinedHeroStrength float64
	advantage            float64
	actions              int
}

func (t *kingdomTurn) region(id int) *RegionStats {
	if id < 0 || id >= len(t.regions) {
		panic(fmt.Sprintf("ai: region %d out of range [0,%d)", id, len(t.regions)))
	}
	return &t.regions[id]
}

// scan builds the turn state from everything the kingdom can see.
func (n *Normal) scan(k *world.Kingdom) *kingdomTurn {
	m := n.w.Map
	t := &kingdomTurn{
		kingdom:      k,
		color:        k.Color,
		regions:      make([]RegionStats, m.RegionCount()),
		monsterTotal: make([]float64, m.RegionCount()),
		advantage:    n.tuning.ArmyAdvantage.Large,
	}
	for i := range t.regions {
		t.regions[i] = newRegionStats()
	}
	for idx := range m.Tiles {
		tile := &m.Tiles[idx]
		if tile.IsFog(k.Color) {
			t.region(tile.Region).FogCount++
			continue
		}
		t.observe(n.w, idx)
	}
	t.combinedHeroStrength = combinedStrength(k)
	return t
}

// observe records whatever stands on a visible tile.
func (t *kingdomTurn) observe(w *world.World, idx int) {
	obj := w.ObjectAt(idx)
	if obj == world.ObjectNone || slices.ContainsFunc(t.objects, func(o IndexObject) bool { return o.Index == idx }) {
		return
	}
	tile := w.Map.Tile(idx)
	stats := t.region(tile.Region)
	switch obj {
	case world.ObjectHero:
		h := w.HeroAt(idx)
		if h.Color == t.color {
			stats.FriendlyHeroes++
		} else {
			t.enemyArmies = append(t.enemyArmies, enemyArmy{Region: tile.Region, Index: idx, Color: h.Color, Strength: h.Army.Strength()})
		}
		if c := w.CastleAt(idx); c != nil {
			t.observeCastle(w, c, tile.Region)
		}
	case world.ObjectCastle:
		t.observeCastle(w, w.CastleAt(idx), tile.Region)
	case world.ObjectMonster:
		stats.MonsterCount++
		t.monsterTotal[tile.Region] += tile.Guard
	}
	entry := IndexObject{Index: idx, Object: obj}
	t.objects = append(t.objects, entry)
	stats.ValidObjects = append(stats.ValidObjects, entry)
}

func (t *kingdomTurn) observeCastle(w *world.World, c *world.Castle, region int) {
	stats := t.region(region)
	switch {
	case c.Color == t.color:
		stats.FriendlyCastles++
	case c.Color == world.ColorNone:
		stats.EnemyCastles++
	default:
		stats.EnemyCastles++
		if strength := w.GarrisonStrength(c); strength > 0 && w.HeroAt(c.Index) == nil {
			t.enemyArmies = append(t.enemyArmies, enemyArmy{Region: region, Index: c.Index, Color: c.Color, Strength: strength})
		}
	}
}

// prune drops objects that no longer stand where they were seen.
func (t *kingdomTurn) prune(w *world.World) {
	gone := func(o IndexObject) bool { return w.ObjectAt(o.Index) != o.Object }
	t.objects = slices.DeleteFunc(t.objects, gone)
	for i := range t.regions {
		t.regions[i].ValidObjects = slices.DeleteFunc(t.regions[i].ValidObjects, gone)
	}
}

func combinedStrength(k *world.Kingdom) float64 {
	total := 0.0
	for _, h := range k.Heroes {
		if !h.Dead {
			total += h.Army.Strength()
		}
	}
	return total
}

// KingdomTurn plays one full turn: region evaluation, castle ranking and
// development, then hero movement until nothing worthwhile is left.
func (n *Normal) KingdomTurn(k *world.Kingdom) {
	if k == nil || k.Lost {
		return
	}
	n.pf.Reset()
	t := n.scan(k)
	n.turn = t
	defer func() { n.turn = nil }()

	n.evaluateRegionSafety(t)
	danger := n.findCastlesInDanger(k.Castles, t.enemyArmies, k.Color)
	for _, c := range n.getSortedCastleList(t, k.Castles, danger) {
		n.CastleTurn(c.Castle, c.UnderThreat)
		n.recruitHero(t, c.Castle, !c.UnderThreat, c.UnderThreat)
	}

	a := n.tuning.ArmyAdvantage
	for _, advantage := range []float64{a.Large, a.Medium, a.Small} {
		t.advantage = advantage
		if !n.HeroesTurn(k.Heroes) {
			break
		}
	}

	log.Info().
		Str("color", k.Color.String()).
		Int("day", n.w.Day).
		Int("gold", k.Gold).
		Int("heroes", len(k.Heroes)).
		Int("castlesInDanger", len(danger)).
		Int("heroActions", t.actions).
		Msg("Kingdom turn complete")
}

// BattleTurn plans the current unit's actions.
func (n *Normal) BattleTurn(arena *battle.Arena, unit *battle.Unit) battle.Actions {
	return n.planner.PlanUnitTurn(arena, unit)
}

// HeroesPreBattle drops routes that the coming fight may invalidate.
func (n *Normal) HeroesPreBattle(hero *world.Hero, attacking bool) {
	log.Debug().Str("hero", hero.Name).Bool("attacking", attacking).Msg("Hero entering battle")
	n.pf.Reset()
}

// HeroesActionComplete refreshes cached routes, strength and objects after
// a hero acted.
func (n *Normal) HeroesActionComplete(hero *world.Hero) {
	n.pf.Reset()
	if n.turn == nil {
		return
	}
	n.turn.combinedHeroStrength = combinedStrength(n.turn.kingdom)
	n.turn.prune(n.w)
}

// ResetPathfinder discards cached routes.
func (n *Normal) ResetPathfinder() {
	n.pf.Reset()
}
