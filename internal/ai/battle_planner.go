package ai

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/kingdom-ai/pkg/battle"
	"github.com/freeeve/kingdom-ai/pkg/world"
)

// BattlePlanner decides what one unit does on its turn.
type BattlePlanner struct {
	rng *Rand
	w   BattleWeights
}

// NewBattlePlanner returns a planner drawing tie-breaks from rng.
func NewBattlePlanner(rng *Rand, w BattleWeights) *BattlePlanner {
	if rng == nil {
		panic("ai: NewBattlePlanner requires rand")
	}
	return &BattlePlanner{rng: rng, w: w}
}

// BattleState is the snapshot a unit decides from. It is rebuilt at the
// start of every unit turn.
type BattleState struct {
	Commander  *battle.Commander
	Color      world.Color
	EnemyColor world.Color

	MyArmyStrength       float64
	EnemyArmyStrength    float64
	MyShooterStrength    float64
	EnemyShooterStrength float64
	MyAverageSpeed       float64
	EnemyAverageSpeed    float64
	EnemySpellStrength   float64

	// HighestDamageExpected is the largest single strike an enemy stack can
	// deal to the acting unit.
	HighestDamageExpected float64

	AttackingCastle  bool
	DefendingCastle  bool
	ConsiderRetreat  bool
	DefensiveTactics bool
}

// AnalyzeBattleState measures both armies from the acting unit's side.
func (p *BattlePlanner) AnalyzeBattleState(arena *battle.Arena, unit *battle.Unit) *BattleState {
	color := unit.Color
	enemy := arena.OpponentColor(color)
	s := &BattleState{
		Commander:       arena.Commander(color),
		Color:           color,
		EnemyColor:      enemy,
		AttackingCastle: arena.AttackingCastle(color),
		DefendingCastle: arena.DefendingCastle(color),
	}
	s.MyArmyStrength, s.MyShooterStrength, s.MyAverageSpeed = measureArmy(arena.AliveUnits(color))
	s.EnemyArmyStrength, s.EnemyShooterStrength, s.EnemyAverageSpeed = measureArmy(arena.AliveUnits(enemy))

	for _, e := range arena.AliveUnits(enemy) {
		s.HighestDamageExpected = math.Max(s.HighestDamageExpected, e.AverageDamage(unit))
	}
	if cmd := arena.EnemyCommander(color); IsCommanderCanSpellcast(arena, cmd) {
		s.EnemySpellStrength = commanderMaximumSpellDamageValue(arena, cmd, enemy)
	}

	s.ConsiderRetreat = arena.CanRetreat(color) && s.MyArmyStrength < s.EnemyArmyStrength
	s.DefensiveTactics = s.DefendingCastle ||
		(s.MyShooterStrength > s.EnemyShooterStrength && s.MyShooterStrength >= s.MyArmyStrength*p.w.DefensiveArcherRatio)
	return s
}

func measureArmy(units []*battle.Unit) (strength, shooters, speed float64) {
	for _, u := range units {
		strength += u.TotalStrength()
		if u.IsArcher() {
			shooters += u.TotalStrength()
		}
		speed += float64(u.EffectiveSpeed())
	}
	if len(units) > 0 {
		speed /= float64(len(units))
	}
	return strength, shooters, speed
}

// IsUnitFaster reports whether current acts before target: higher speed,
// then higher initiative, then lower UID.
func IsUnitFaster(current, target *battle.Unit) bool {
	if cs, ts := current.EffectiveSpeed(), target.EffectiveSpeed(); cs != ts {
		return cs > ts
	}
	if current.Initiative != target.Initiative {
		return current.Initiative > target.Initiative
	}
	return current.UID < target.UID
}

// IsHeroWorthSaving reports whether losing the commander would cost more
// than the battle: experienced heroes and artifact carriers.
func IsHeroWorthSaving(cmd *battle.Commander) bool {
	if cmd == nil || !cmd.IsHero {
		return false
	}
	return cmd.Level > 2 || len(cmd.Artifacts) > 0
}

// IsCommanderCanSpellcast reports whether the commander may cast some known
// spell this round.
func IsCommanderCanSpellcast(arena *battle.Arena, cmd *battle.Commander) bool {
	if cmd == nil || arena.SpellsDisabled || cmd.Silenced || cmd.CastThisRound || !cmd.HasSpellBook() {
		return false
	}
	for _, s := range cmd.KnownSpells() {
		if cmd.CanCast(s.ID) {
			return true
		}
	}
	return false
}

// CheckRetreatCondition reports whether the side should flee to save its
// hero.
func (p *BattlePlanner) CheckRetreatCondition(s *BattleState) bool {
	if !s.ConsiderRetreat || !IsHeroWorthSaving(s.Commander) {
		return false
	}
	return p.strengthRatio(s) < p.w.RetreatRatio
}

// strengthRatio compares own and enemy strength with shooters and enemy
// magic weighed in and adjusted for average speed.
func (p *BattlePlanner) strengthRatio(s *BattleState) float64 {
	enemy := s.EnemyArmyStrength + s.EnemyShooterStrength*p.w.ShooterWeight + s.EnemySpellStrength
	if enemy <= 0 {
		return math.Inf(1)
	}
	own := s.MyArmyStrength + s.MyShooterStrength*p.w.ShooterWeight
	speed := math.Max(1+(s.MyAverageSpeed-s.EnemyAverageSpeed)*p.w.SpeedAdvantageWeight, 0.5)
	return own * speed / enemy
}

// unitTurn is the working state of one planning call.
type unitTurn struct {
	p     *BattlePlanner
	arena *battle.Arena
	unit  *battle.Unit
	state *BattleState
}

// PlanUnitTurn returns the ordered actions for the unit. Uncontrolled units
// act on their own; otherwise the unit weighs retreat, its own attack and
// its commander's spells.
func (p *BattlePlanner) PlanUnitTurn(arena *battle.Arena, unit *battle.Unit) battle.Actions {
	if unit == nil || !unit.IsValid() {
		return nil
	}
	if unit.IsImmovable() {
		return battle.Actions{battle.NewSkip(unit.UID)}
	}
	t := &unitTurn{p: p, arena: arena, unit: unit}
	if unit.Has(battle.ModeBerserk) || unit.Has(battle.ModeHypnotized) {
		return t.berserkTurn()
	}

	t.state = p.AnalyzeBattleState(arena, unit)
	if p.CheckRetreatCondition(t.state) {
		return t.retreat()
	}

	var (
		actions battle.Actions
		value   float64
	)
	if unit.IsArcher() {
		actions, value = t.archerDecision()
	} else {
		var target BattleTargetPair
		if t.state.DefensiveTactics {
			target, value = t.meleeUnitDefense()
		} else {
			target, value = t.meleeUnitOffense()
		}
		actions = t.targetActions(target)
	}

	if t.shouldConsiderSpells() {
		if sel := t.selectBestSpell(math.Max(value, 0), false); sel.Spell != battle.SpellNone {
			log.Debug().
				Uint32("unit", unit.UID).
				Str("spell", string(sel.Spell)).
				Int("cell", sel.Cell).
				Float64("value", sel.Value).
				Float64("mundane", value).
				Msg("Spell preferred")
			return battle.Actions{battle.NewCast(sel.Spell, sel.Cell)}
		}
	}
	if len(actions) == 0 {
		return battle.Actions{battle.NewSkip(unit.UID)}
	}
	return actions
}

// retreat may fire one last damage spell before fleeing.
func (t *unitTurn) retreat() battle.Actions {
	log.Info().
		Str("color", t.state.Color.String()).
		Float64("own", t.state.MyArmyStrength).
		Float64("enemy", t.state.EnemyArmyStrength).
		Msg("Retreating")
	var out battle.Actions
	if IsCommanderCanSpellcast(t.arena, t.state.Commander) {
		if sel := t.selectBestSpell(0, true); sel.Spell != battle.SpellNone {
			out = append(out, battle.NewCast(sel.Spell, sel.Cell))
		}
	}
	return append(out, battle.NewRetreat())
}

func (t *unitTurn) shouldConsiderSpells() bool {
	s := t.state
	if !IsCommanderCanSpellcast(t.arena, s.Commander) {
		return false
	}
	// No need to spend points on a won battle.
	return s.MyArmyStrength <= s.EnemyArmyStrength*t.p.w.OverpoweredRatio
}

// targetActions turns a chosen cell and target into commands. A target cell
// equal to the unit's own means it attacks without moving.
func (t *unitTurn) targetActions(target BattleTargetPair) battle.Actions {
	cell := target.Cell
	if cell == t.unit.Cell {
		cell = -1
	}
	switch {
	case target.Unit != nil:
		return battle.Actions{battle.NewAttack(t.unit.UID, target.Unit.UID, cell, target.Unit.Cell)}
	case cell >= 0:
		return battle.Actions{battle.NewMove(t.unit.UID, cell)}
	}
	return nil
}

// berserkTurn attacks the closest stack regardless of side. Equally close
// stacks are picked at random.
func (t *unitTurn) berserkTurn() battle.Actions {
	u := t.unit
	var (
		nearest []*battle.Unit
		best    = math.MaxInt
	)
	for _, other := range t.arena.Units {
		if other == u || !other.IsValid() {
			continue
		}
		d := battle.HexDistance(u.Cell, other.Cell)
		switch {
		case d < best:
			best = d
			nearest = append(nearest[:0], other)
		case d == best:
			nearest = append(nearest, other)
		}
	}
	if len(nearest) == 0 {
		return battle.Actions{battle.NewSkip(u.UID)}
	}
	target := nearest[t.p.rng.Intn(len(nearest))]

	if u.IsArcher() && !t.arena.IsHandFighting(u) {
		return battle.Actions{battle.NewAttack(u.UID, target.UID, -1, target.Cell)}
	}
	if battle.IsNeighbour(u.Cell, target.Cell) {
		return battle.Actions{battle.NewAttack(u.UID, target.UID, -1, target.Cell)}
	}
	if positions := t.arena.AttackPositions(u, target); len(positions) > 0 {
		return battle.Actions{battle.NewAttack(u.UID, target.UID, positions[0], target.Cell)}
	}
	if cell := t.arena.NearestReachableCell(u, target.Cell); cell != u.Cell {
		return battle.Actions{battle.NewMove(u.UID, cell)}
	}
	return battle.Actions{battle.NewSkip(u.UID)}
}

// killedStrength is the strength removed from u by damage, counting
// partial creatures.
func killedStrength(u *battle.Unit, damage float64) float64 {
	if damage <= 0 {
		return 0
	}
	if u.HitPoints <= 0 {
		return u.TotalStrength()
	}
	return math.Min(damage/float64(u.HitPoints), float64(u.Count)) * u.Strength
}
