package ai

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

// HeroToMove is a hero and the patrol area its targets must lie in.
// PatrolCenter -1 means the hero roams freely.
type HeroToMove struct {
	Hero           *world.Hero
	PatrolCenter   int
	PatrolDistance int
}

func newHeroToMove(h *world.Hero) HeroToMove {
	if h.Patrol && h.PatrolCenter >= 0 {
		return HeroToMove{Hero: h, PatrolCenter: h.PatrolCenter, PatrolDistance: h.PatrolRadius}
	}
	return HeroToMove{Hero: h, PatrolCenter: -1}
}

// getPriorityTarget returns the best legal target for the hero and its
// score, or -1 and the ignore threshold when nothing is worth the trip.
func (n *Normal) getPriorityTarget(t *kingdomTurn, info HeroToMove) (int, float64) {
	h := info.Hero
	valueToIgnore := n.tuning.ValueToIgnore
	best, bestValue := -1, valueToIgnore

	n.pf.Reevaluate(h)
	for _, obj := range t.objects {
		if info.PatrolCenter >= 0 && n.w.Map.ApproxDistance(obj.Index, info.PatrolCenter) > info.PatrolDistance {
			continue
		}
		if !n.isValidObject(t, h, obj.Index) {
			continue
		}
		dist := n.pf.Distance(obj.Index)
		if dist == 0 {
			continue
		}
		value := n.getObjectValue(t, h, obj.Index, valueToIgnore, dist)
		if value > bestValue {
			best, bestValue = obj.Index, value
		}
	}
	if best >= 0 {
		log.Debug().Str("hero", h.Name).Int("target", best).Float64("value", bestValue).Msg("Priority target")
	}
	return best, bestValue
}

// HeroesTurn moves heroes one step at a time, always choosing the hero and
// target pair with the highest value. It reports whether some hero still
// has movement left but found nothing worth doing.
func (n *Normal) HeroesTurn(heroes []*world.Hero) bool {
	if len(heroes) == 0 {
		return false
	}
	t := n.turn
	if t == nil {
		k := n.w.Kingdom(heroes[0].Color)
		if k == nil {
			return false
		}
		t = n.scan(k)
		n.evaluateRegionSafety(t)
		n.turn = t
		defer func() { n.turn = nil }()
	}

	available := slices.DeleteFunc(slices.Clone(heroes), func(h *world.Hero) bool { return !h.MayStillMove() })
	for len(available) > 0 && t.actions < n.tuning.MaxHeroActionsPerTurn {
		var chosen *world.Hero
		target, bestValue := -1, 0.0
		for _, h := range available {
			idx, value := n.getPriorityTarget(t, newHeroToMove(h))
			if idx >= 0 && (chosen == nil || value > bestValue) {
				chosen, target, bestValue = h, idx, value
			}
		}
		if chosen == nil {
			break
		}

		n.pf.Reevaluate(chosen)
		path := n.pf.Path(target)
		before, points := chosen.Index, chosen.MovePoints
		t.actions++
		ok := n.issue(world.Action{
			Type:   world.ActionMoveHero,
			Color:  chosen.Color,
			HeroID: chosen.ID,
			Target: target,
			Path:   path,
		})
		n.pf.Reset()
		t.prune(n.w)
		t.combinedHeroStrength = combinedStrength(t.kingdom)

		stuck := !ok || (chosen.Index == before && chosen.MovePoints == points)
		available = slices.DeleteFunc(available, func(h *world.Hero) bool {
			return !h.MayStillMove() || (stuck && h == chosen)
		})
	}
	return len(available) > 0
}
