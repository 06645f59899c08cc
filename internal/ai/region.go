package ai

import (
	"math"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

// RegionStats summarises one map region for the current turn. Until
// Evaluated is set the numeric fields hold their sentinels and must not be
// trusted.
type RegionStats struct {
	Evaluated       bool
	HighestThreat   float64
	AverageMonster  float64
	FriendlyHeroes  int
	FriendlyCastles int
	EnemyCastles    int
	MonsterCount    int
	FogCount        int
	SafetyFactor    int
	SpellLevel      int
	ValidObjects    []IndexObject
}

func newRegionStats() RegionStats {
	return RegionStats{HighestThreat: -1, AverageMonster: -1, SpellLevel: 2}
}

// evaluateRegionSafety spreads enemy threats over the regions they can hit
// and derives the safety factor and spell tier of every region.
func (n *Normal) evaluateRegionSafety(t *kingdomTurn) {
	threat := make([]float64, len(t.regions))
	for _, army := range t.enemyArmies {
		threat[army.Region] = math.Max(threat[army.Region], army.Strength)
		projected := army.Strength * n.tuning.Region.ThreatProjection
		for _, neighbour := range n.w.Map.RegionNeighbours(army.Region) {
			threat[neighbour] = math.Max(threat[neighbour], projected)
		}
	}
	for id := range t.regions {
		stats := t.region(id)
		stats.HighestThreat = threat[id]
		stats.AverageMonster = 0
		if stats.MonsterCount > 0 {
			stats.AverageMonster = t.monsterTotal[id] / float64(stats.MonsterCount)
		}
		n.tuning.Region.evaluate(stats, t.combinedHeroStrength)
	}
}

// evaluate fills the derived fields of stats. Safety never increases as the
// highest threat grows.
func (w RegionWeights) evaluate(stats *RegionStats, ownStrength float64) {
	ratio := threatRatio(stats.HighestThreat, ownStrength, w.MaxThreatRatio)
	stats.SafetyFactor = stats.FriendlyCastles*w.CastleSafety +
		stats.FriendlyHeroes*w.HeroSafety -
		stats.EnemyCastles*w.EnemyCastleDanger -
		stats.FogCount/w.FogTilesPerDanger -
		int(ratio*w.ThreatDanger)

	switch {
	case ratio > 2:
		stats.SpellLevel = 5
	case ratio > 1:
		stats.SpellLevel = 4
	case ratio > 0.5:
		stats.SpellLevel = 3
	default:
		stats.SpellLevel = 2
	}
	stats.Evaluated = true
}

func threatRatio(threat, own, limit float64) float64 {
	if threat <= 0 {
		return 0
	}
	if own <= 0 {
		return limit
	}
	return math.Min(threat/own, limit)
}

// RevealFog updates the fog count of the tile's region and records the
// object that just became visible. Regions are not re-evaluated.
func (n *Normal) RevealFog(tile *world.Tile) {
	t := n.turn
	if t == nil || tile == nil {
		return
	}
	stats := t.region(tile.Region)
	if stats.FogCount > 0 {
		stats.FogCount--
	}
	t.observe(n.w, tile.Index)
}
