package ai

import (
	"math"

	"github.com/freeeve/kingdom-ai/pkg/battle"
)

// archerDecision shoots the most valuable target when the line is clear.
// A blocked archer slips away when it can outpace its attackers and
// survive, and fights back otherwise.
func (t *unitTurn) archerDecision() (battle.Actions, float64) {
	u := t.unit
	if !t.arena.IsHandFighting(u) {
		target, value := t.bestShot()
		if target == nil {
			return nil, 0
		}
		return battle.Actions{battle.NewAttack(u.UID, target.UID, -1, target.Cell)}, value
	}

	if t.canKite() {
		if cell := t.safeCell(); cell >= 0 {
			return battle.Actions{battle.NewMove(u.UID, cell)}, 0
		}
	}
	var (
		target *battle.Unit
		best   = math.Inf(-1)
	)
	for _, e := range t.arena.AdjacentEnemies(u) {
		if v := t.meleeValue(e); v > best {
			target, best = e, v
		}
	}
	if target == nil {
		return nil, 0
	}
	return battle.Actions{battle.NewAttack(u.UID, target.UID, -1, target.Cell)}, best
}

func (t *unitTurn) bestShot() (*battle.Unit, float64) {
	var (
		target *battle.Unit
		best   = math.Inf(-1)
	)
	for _, e := range t.arena.EnemyUnits(t.unit.Color) {
		value := killedStrength(e, t.unit.AverageDamage(e))
		if e.IsArcher() {
			value *= 1 + t.p.w.ShooterWeight
		}
		if value > best {
			target, best = e, value
		}
	}
	return target, best
}

// canKite reports whether every adjacent enemy is slower and no single
// enemy strike can wipe the stack out anyway.
func (t *unitTurn) canKite() bool {
	u := t.unit
	if t.state.HighestDamageExpected >= float64(u.Count*u.HitPoints) {
		return false
	}
	for _, e := range t.arena.AdjacentEnemies(u) {
		if !IsUnitFaster(u, e) {
			return false
		}
	}
	return true
}

// safeCell returns the reachable cell touching no enemy that lies farthest
// from the closest enemy, or -1.
func (t *unitTurn) safeCell() int {
	enemies := t.arena.EnemyUnits(t.unit.Color)
	best, bestDist := -1, 0
	for _, cell := range t.arena.Reachable(t.unit) {
		if cell == t.unit.Cell {
			continue
		}
		closest := math.MaxInt
		for _, e := range enemies {
			closest = min(closest, battle.HexDistance(cell, e.Cell))
		}
		if closest > 1 && closest > bestDist {
			best, bestDist = cell, closest
		}
	}
	return best
}
