package ai

import (
	"cmp"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

// AICastle is a castle together with this turn's judgement of it.
type AICastle struct {
	Castle        *world.Castle
	UnderThreat   bool
	SafetyFactor  int
	BuildingValue int
}

// NewAICastle panics when c is nil.
func NewAICastle(c *world.Castle, underThreat bool, safety, buildingValue int) AICastle {
	if c == nil {
		panic("ai: AICastle requires a castle")
	}
	return AICastle{Castle: c, UnderThreat: underThreat, SafetyFactor: safety, BuildingValue: buildingValue}
}

// findCastlesInDanger returns the map indices of castles that an enemy army
// stronger than the garrison can reach within the threat horizon.
func (n *Normal) findCastlesInDanger(castles []*world.Castle, enemies []enemyArmy, color world.Color) map[int]bool {
	limit := n.tuning.ThreatDistanceLimit
	danger := make(map[int]bool)
	for _, c := range castles {
		garrison := n.w.GarrisonStrength(c)
		for _, army := range enemies {
			if army.Color == color || army.Index == c.Index {
				continue
			}
			if uint32(n.w.Map.ApproxDistance(army.Index, c.Index))*100 > limit {
				continue
			}
			dist := n.pf.DistanceBetween(army.Index, c.Index, army.Color, army.Strength)
			if dist == 0 || dist > limit || army.Strength <= garrison {
				continue
			}
			log.Debug().
				Str("castle", c.Name).
				Int("enemyAt", army.Index).
				Float64("enemy", army.Strength).
				Float64("garrison", garrison).
				Msg("Castle in danger")
			danger[c.Index] = true
			break
		}
	}
	return danger
}

// getSortedCastleList orders castles for funding: threatened ones first,
// least safe first among them; the rest by building value.
func (n *Normal) getSortedCastleList(t *kingdomTurn, castles []*world.Castle, danger map[int]bool) []AICastle {
	out := make([]AICastle, 0, len(castles))
	for _, c := range castles {
		safety := t.region(n.w.Map.Tile(c.Index).Region).SafetyFactor
		out = append(out, NewAICastle(c, danger[c.Index], safety, c.BuildingValue()))
	}
	slices.SortStableFunc(out, compareCastles)
	return out
}

func compareCastles(a, b AICastle) int {
	if a.UnderThreat != b.UnderThreat {
		if a.UnderThreat {
			return -1
		}
		return 1
	}
	if a.UnderThreat {
		if c := cmp.Compare(a.SafetyFactor, b.SafetyFactor); c != 0 {
			return c
		}
		if c := cmp.Compare(b.BuildingValue, a.BuildingValue); c != 0 {
			return c
		}
	} else {
		if c := cmp.Compare(b.BuildingValue, a.BuildingValue); c != 0 {
			return c
		}
		if c := cmp.Compare(a.SafetyFactor, b.SafetyFactor); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Castle.ID, b.Castle.ID)
}

// isIsland reports whether the castle's region borders too few regions to
// be reached by land armies easily.
func (n *Normal) isIsland(c *world.Castle) bool {
	region := n.w.Map.Tile(c.Index).Region
	return len(n.w.Map.RegionNeighbours(region)) < n.tuning.IslandRegionLimit
}

// CastleTurn issues at most one build or recruit command. Threatened
// castles hire troops or fortify; others grow their economy or dwellings
// while keeping a gold reserve.
func (n *Normal) CastleTurn(c *world.Castle, defensive bool) {
	k := n.w.Kingdom(c.Color)
	if k == nil {
		return
	}
	if defensive {
		if troops := recruitOrder(c, k.Gold); len(troops) > 0 {
			n.issue(world.Action{Type: world.ActionRecruitTroops, Color: c.Color, CastleID: c.ID, Troops: troops})
			return
		}
		if b, ok := bestBuilding(c, k.Gold, func(b world.Building) int {
			if b.Kind == world.KindDefense {
				return b.Value * 2
			}
			return 0
		}); ok {
			n.issue(world.Action{Type: world.ActionBuild, Color: c.Color, CastleID: c.ID, Building: b.Name})
		}
		return
	}

	preferred := world.KindDwelling
	if n.isIsland(c) {
		preferred = world.KindEconomy
	}
	budget := k.Gold - n.tuning.GoldReserve
	if b, ok := bestBuilding(c, budget, func(b world.Building) int {
		if b.Kind == preferred {
			return b.Value * 2
		}
		return b.Value
	}); ok {
		n.issue(world.Action{Type: world.ActionBuild, Color: c.Color, CastleID: c.ID, Building: b.Name})
		return
	}
	if troops := recruitOrder(c, budget); len(troops) > 0 {
		n.issue(world.Action{Type: world.ActionRecruitTroops, Color: c.Color, CastleID: c.ID, Troops: troops})
	}
}

// bestBuilding returns the affordable building with the highest positive
// score, earliest in the catalog on ties.
func bestBuilding(c *world.Castle, budget int, score func(world.Building) int) (world.Building, bool) {
	var best world.Building
	bestScore := 0
	for _, b := range c.BuildOptions() {
		if b.Cost > budget {
			continue
		}
		if s := score(b); s > bestScore {
			best, bestScore = b, s
		}
	}
	return best, bestScore > 0
}

// recruitOrder spends up to budget on the strongest creatures first.
func recruitOrder(c *world.Castle, budget int) []world.Troop {
	recruits := slices.Clone(c.Recruits)
	slices.SortStableFunc(recruits, func(a, b world.Recruit) int {
		return cmp.Compare(b.Strength, a.Strength)
	})
	var out []world.Troop
	for _, r := range recruits {
		if r.Count <= 0 || budget <= 0 {
			continue
		}
		count := r.Count
		if r.Cost > 0 {
			count = min(count, budget/r.Cost)
		}
		if count <= 0 {
			continue
		}
		budget -= count * r.Cost
		out = append(out, world.Troop{Monster: r.Monster, Count: count, Strength: r.Strength})
	}
	return out
}

// recruitHero hires a hero in the castle when the kingdom has room and
// gold for one. A safe castle hands its garrison to the new hero; a
// threatened one may dip into the gold reserve.
func (n *Normal) recruitHero(t *kingdomTurn, c *world.Castle, buyArmy, underThreat bool) bool {
	k := t.kingdom
	limit := k.HeroLimit
	if limit == 0 {
		limit = n.tuning.HeroLimit
	}
	if len(k.Heroes) >= limit || n.w.HeroAt(c.Index) != nil {
		return false
	}
	need := n.tuning.HeroCost
	if !underThreat {
		need += n.tuning.GoldReserve
	}
	if k.Gold < need {
		return false
	}
	if !n.issue(world.Action{Type: world.ActionRecruitHero, Color: c.Color, CastleID: c.ID, BuyArmy: buyArmy}) {
		return false
	}
	t.combinedHeroStrength = combinedStrength(k)
	return true
}

// issue sends a command and logs a failure. It reports success.
func (n *Normal) issue(a world.Action) bool {
	if err := n.exec.Execute(a); err != nil {
		log.Warn().Err(err).Str("action", string(a.Type)).Str("color", a.Color.String()).Msg("Command rejected")
		return false
	}
	return true
}
