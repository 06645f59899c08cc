package ai

import (
	"math"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

// isValidObject reports whether the hero should consider moving to idx with
// the turn's current army advantage requirement.
func (n *Normal) isValidObject(t *kingdomTurn, h *world.Hero, idx int) bool {
	tile := n.w.Map.Tile(idx)
	if tile == nil {
		return false
	}
	strength := h.Army.Strength()
	switch obj := n.w.ObjectAt(idx); {
	case obj == world.ObjectNone:
		return false
	case obj == world.ObjectHero:
		other := n.w.HeroAt(idx)
		return other.Color != h.Color && strength > other.Army.Strength()*t.advantage
	case obj == world.ObjectCastle:
		c := n.w.CastleAt(idx)
		if c.Color == h.Color {
			return !c.Army.IsEmpty()
		}
		return strength > n.w.GarrisonStrength(c)*t.advantage
	case obj == world.ObjectMonster:
		return strength > tile.Guard*t.advantage
	case obj.IsCapture():
		if tile.Owner == h.Color {
			return false
		}
		return tile.Guard == 0 || strength > tile.Guard*t.advantage
	case obj.IsQuantity(), obj == world.ObjectDwelling:
		return tile.Quantity > 0
	case obj.IsVisitOnce():
		return !tile.VisitedBy(h.ID)
	case obj.IsPickup():
		return true
	}
	return false
}

// getObjectValue scores an object for the hero's role, discounted by the
// travel distance in move points.
func (n *Normal) getObjectValue(t *kingdomTurn, h *world.Hero, idx int, valueToIgnore float64, distance uint32) float64 {
	if h.Role == world.RoleFighter {
		return n.getFighterObjectValue(t, h, idx, valueToIgnore, distance)
	}
	return n.getHunterObjectValue(t, h, idx, valueToIgnore, distance)
}

// getHunterObjectValue favours income, resources and map knowledge and
// shies away from danger.
func (n *Normal) getHunterObjectValue(t *kingdomTurn, h *world.Hero, idx int, valueToIgnore float64, distance uint32) float64 {
	tile := n.w.Map.Tile(idx)
	value := 0.0
	switch obj := n.w.ObjectAt(idx); {
	case obj == world.ObjectCastle:
		c := n.w.CastleAt(idx)
		if c.Color == h.Color {
			value = c.Army.Strength()
		} else {
			value = float64(c.BuildingValue())*150 + 3000
		}
	case obj == world.ObjectHero:
		value = 5000
	case obj == world.ObjectMonster:
		value = 1000
	case obj == world.ObjectMine:
		value = 2000
		if tile.Resource == "gold" {
			value = 4000
		}
	case obj.IsCapture():
		value = 2000
	case obj == world.ObjectArtifact:
		value = 1000 * tile.Value
	case obj.IsPickup():
		value = 850
	case obj.IsQuantity():
		value = 500
	case obj == world.ObjectXanadu:
		value = 3000
	case obj == world.ObjectHeroUpgrade:
		value = 500
	case obj == world.ObjectDwelling:
		value = float64(tile.Quantity) * tile.Value
	case obj == world.ObjectObservationTower:
		value = float64(n.fogAround(t, idx, 10)) * n.tuning.FogTileValue
	}
	return n.finishValue(t, h, idx, value, 1, valueToIgnore, distance)
}

// getFighterObjectValue favours fights, artifacts and army growth and
// accepts more risk.
func (n *Normal) getFighterObjectValue(t *kingdomTurn, h *world.Hero, idx int, valueToIgnore float64, distance uint32) float64 {
	tile := n.w.Map.Tile(idx)
	value := 0.0
	switch obj := n.w.ObjectAt(idx); {
	case obj == world.ObjectCastle:
		c := n.w.CastleAt(idx)
		if c.Color == h.Color {
			value = c.Army.Strength() * 2
		} else {
			value = float64(c.BuildingValue())*250 + 5000
		}
	case obj == world.ObjectHero:
		value = 7500
	case obj == world.ObjectMonster:
		value = 2000 + tile.Guard
	case obj == world.ObjectMine:
		value = 500
		if tile.Resource == "gold" {
			value = 1000
		}
	case obj.IsCapture():
		value = 500
	case obj == world.ObjectArtifact:
		value = 1500 * tile.Value
	case obj.IsPickup():
		value = 400
	case obj.IsQuantity():
		value = 250
	case obj == world.ObjectXanadu:
		value = 5000
	case obj == world.ObjectHeroUpgrade:
		value = 2000
	case obj == world.ObjectDwelling:
		value = 2 * float64(tile.Quantity) * tile.Value
	case obj == world.ObjectObservationTower:
		value = float64(n.fogAround(t, idx, 10)) * n.tuning.FogTileValue / 2
	}
	return n.finishValue(t, h, idx, value, n.tuning.FighterRiskFactor, valueToIgnore, distance)
}

// finishValue applies region danger and the distance discount. Worthless
// objects stay at or below valueToIgnore.
func (n *Normal) finishValue(t *kingdomTurn, h *world.Hero, idx int, value, risk, valueToIgnore float64, distance uint32) float64 {
	if value <= 0 {
		return math.Min(value, valueToIgnore) - n.distancePenalty(distance)
	}
	stats := t.region(n.w.Map.Tile(idx).Region)
	if stats.Evaluated && stats.HighestThreat > h.Army.Strength() {
		value -= n.tuning.DangerousTaskPenalty * risk
	}
	return value - n.distancePenalty(distance)
}

// distancePenalty grows strictly with distance.
func (n *Normal) distancePenalty(distance uint32) float64 {
	d := float64(distance)
	return d * math.Log10(d+10) * n.tuning.DistanceWeight
}

func (n *Normal) fogAround(t *kingdomTurn, idx, radius int) int {
	count := 0
	for _, i := range n.w.Map.Within(idx, radius) {
		if n.w.Map.Tiles[i].IsFog(t.color) {
			count++
		}
	}
	return count
}
