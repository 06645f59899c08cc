package ai

import (
	"math"

	"github.com/freeeve/kingdom-ai/pkg/battle"
)

// meleeValue is the enemy strength a strike removes minus what the
// retaliation costs us. Fast enemies and shooters are worth more.
func (t *unitTurn) meleeValue(target *battle.Unit) float64 {
	u, w := t.unit, t.p.w
	dmg := u.AverageDamage(target)
	if u.Archer {
		dmg /= 2
	}
	value := killedStrength(target, dmg)
	value -= killedStrength(u, target.RetaliationDamage(u, dmg)) * w.RetaliationWeight
	if IsUnitFaster(target, u) {
		value *= 1 + w.FasterTargetBonus
	}
	if target.IsArcher() {
		value *= 1 + w.ShooterWeight
	}
	return value
}

// bestAttackCell picks the attack position touching the fewest other
// enemies. The unit's own cell wins ties.
func (t *unitTurn) bestAttackCell(target *battle.Unit, positions []int) int {
	best, bestExposure := -1, math.MaxInt
	for _, cell := range positions {
		exposure := 0
		for _, e := range t.arena.EnemyUnits(t.unit.Color) {
			if e != target && battle.IsNeighbour(cell, e.Cell) {
				exposure++
			}
		}
		if exposure < bestExposure || (exposure == bestExposure && cell == t.unit.Cell) {
			best, bestExposure = cell, exposure
		}
	}
	return best
}

// meleeUnitOffense attacks the reachable enemy whose loss hurts the enemy
// most. With nothing in reach it closes in on the nearest enemy.
func (t *unitTurn) meleeUnitOffense() (BattleTargetPair, float64) {
	u := t.unit
	best, bestValue := noTarget(), math.Inf(-1)
	for _, e := range t.arena.EnemyUnits(u.Color) {
		positions := t.arena.AttackPositions(u, e)
		if len(positions) == 0 {
			continue
		}
		if v := t.meleeValue(e); v > bestValue {
			best = BattleTargetPair{Cell: t.bestAttackCell(e, positions), Unit: e}
			bestValue = v
		}
	}
	if best.Unit != nil {
		return best, bestValue
	}
	return t.approach(), 0
}

// approach moves toward the closest enemy, the strongest one on ties.
func (t *unitTurn) approach() BattleTargetPair {
	u := t.unit
	var goal *battle.Unit
	for _, e := range t.arena.EnemyUnits(u.Color) {
		if goal == nil {
			goal = e
			continue
		}
		d, gd := battle.HexDistance(u.Cell, e.Cell), battle.HexDistance(u.Cell, goal.Cell)
		if d < gd || (d == gd && e.TotalStrength() > goal.TotalStrength()) {
			goal = e
		}
	}
	if goal == nil {
		return noTarget()
	}
	cell := t.arena.NearestReachableCell(u, goal.Cell)
	if cell == u.Cell {
		return noTarget()
	}
	return BattleTargetPair{Cell: cell}
}

// meleeUnitDefense holds position: strike enemies already in contact,
// otherwise intercept enemies threatening our shooters, otherwise stand
// guard next to the strongest shooter.
func (t *unitTurn) meleeUnitDefense() (BattleTargetPair, float64) {
	u := t.unit
	best, bestValue := noTarget(), math.Inf(-1)
	for _, e := range t.arena.AdjacentEnemies(u) {
		if v := t.meleeValue(e); v > bestValue {
			best, bestValue = BattleTargetPair{Cell: u.Cell, Unit: e}, v
		}
	}
	if best.Unit != nil {
		return best, bestValue
	}
	// Defenders inside the walls do not sally out.
	if t.state.DefendingCastle && t.arena.IsCastleCell(u.Cell) {
		return noTarget(), 0
	}

	var guard *battle.Unit
	for _, ally := range t.arena.AliveUnits(u.Color) {
		if ally == u || !ally.IsArcher() {
			continue
		}
		for _, e := range t.arena.AdjacentEnemies(ally) {
			positions := t.arena.AttackPositions(u, e)
			if len(positions) == 0 {
				continue
			}
			if v := t.meleeValue(e); v > bestValue {
				best = BattleTargetPair{Cell: t.bestAttackCell(e, positions), Unit: e}
				bestValue = v
			}
		}
		if guard == nil || ally.TotalStrength() > guard.TotalStrength() {
			guard = ally
		}
	}
	if best.Unit != nil {
		return best, bestValue
	}
	if guard == nil || battle.IsNeighbour(u.Cell, guard.Cell) {
		return noTarget(), 0
	}
	cell := t.arena.NearestReachableCell(u, guard.Cell)
	if cell == u.Cell {
		return noTarget(), 0
	}
	return BattleTargetPair{Cell: cell}, 0
}
