package ai

import (
	"math"

	"github.com/freeeve/kingdom-ai/pkg/battle"
	"github.com/freeeve/kingdom-ai/pkg/world"
)

// Effects that hurt the unit they are on.
var harmfulEffects = map[battle.SpellID]bool{
	battle.SpellSlow:      true,
	battle.SpellBlind:     true,
	battle.SpellParalyze:  true,
	battle.SpellCurse:     true,
	battle.SpellBerserker: true,
	battle.SpellHypnotize: true,
}

// Share of a stack's worth that an effect is assumed to add or remove for
// a full duration.
const (
	blindRatio     = 0.5
	paralyzeRatio  = 0.6
	berserkRatio   = 0.6
	hypnotizeRatio = 0.7
	antimagicRatio = 0.3
	dispelRatio    = 0.2

	// Creatures raised by plain resurrect leave when the battle ends.
	temporaryResurrectRatio = 0.8
)

// selectBestSpell returns the castable spell worth more than threshold, or
// an empty selection. A retreating side only looks at damage and ignores
// its own losses.
func (t *unitTurn) selectBestSpell(threshold float64, retreating bool) SpellSelection {
	cmd, color := t.state.Commander, t.state.Color
	power := max(cmd.Power, 1)
	best := SpellSelection{Cell: -1, Value: threshold}
	for _, s := range cmd.KnownSpells() {
		if !cmd.CanCast(s.ID) || (retreating && s.Category != battle.CategoryDamage) {
			continue
		}
		var o SpellcastOutcome
		switch s.Category {
		case battle.CategoryDamage:
			o = spellDamageValue(t.arena, s, color, power, retreating)
		case battle.CategoryDispel:
			o = spellDispelValue(t.arena, s, color)
		case battle.CategoryResurrect:
			o = spellResurrectValue(t.arena, s, color, power)
		case battle.CategorySummon:
			o = spellSummonValue(t.arena, s, color, power)
		case battle.CategoryEffect:
			o = t.spellEffectValue(s, power)
		}
		if o.Value > best.Value {
			best = SpellSelection{Spell: s.ID, Cell: o.Cell, Value: o.Value}
		}
	}
	return best
}

// spellDamageValue scores a damage spell cast by color: enemy strength
// destroyed minus own strength lost.
func spellDamageValue(a *battle.Arena, s battle.Spell, color world.Color, power int, ignoreOwnLosses bool) SpellcastOutcome {
	base := float64(s.Damage * power)
	hit := func(targets []*battle.Unit, mass bool, cell int, o SpellcastOutcome) SpellcastOutcome {
		total := 0.0
		for i, u := range targets {
			dmg := base
			if s.Chain && i > 0 {
				dmg /= float64(int(1) << i)
			}
			v := killedStrength(u, dmg)
			if u.Color == color {
				if ignoreOwnLosses {
					continue
				}
				v = -v
			}
			if mass {
				o = o.UpdateOutcome(v, cell, true)
				continue
			}
			total += v
		}
		if mass {
			return o
		}
		return o.UpdateOutcome(total, cell, false)
	}

	o := newSpellcastOutcome()
	if s.Global || s.Mass {
		return hit(a.SpellTargets(s, color, -1), true, -1, o)
	}
	for _, e := range a.EnemyUnits(color) {
		o = hit(a.SpellTargets(s, color, e.Cell), false, e.Cell, o)
	}
	return o
}

// commanderMaximumSpellDamageValue is the most strength the commander of
// color could destroy with one damage spell right now.
func commanderMaximumSpellDamageValue(a *battle.Arena, cmd *battle.Commander, color world.Color) float64 {
	best := 0.0
	power := max(cmd.Power, 1)
	for _, s := range cmd.KnownSpells() {
		if s.Category != battle.CategoryDamage || !cmd.CanCast(s.ID) {
			continue
		}
		best = math.Max(best, spellDamageValue(a, s, color, power, false).Value)
	}
	return best
}

// spellDispelValue rates removing effects: enemy blessings and own curses
// count for, the reverse against.
func spellDispelValue(a *battle.Arena, s battle.Spell, color world.Color) SpellcastOutcome {
	worth := func(u *battle.Unit) float64 {
		v := 0.0
		for _, e := range u.Effects {
			gain := u.TotalStrength() * dispelRatio * math.Min(float64(e.Duration), 3) / 3
			if harmfulEffects[e.Spell] != (u.Color == color) {
				gain = -gain
			}
			v += gain
		}
		return v
	}

	o := newSpellcastOutcome()
	if s.Mass {
		for _, u := range a.SpellTargets(s, color, -1) {
			o = o.UpdateOutcome(worth(u), -1, true)
		}
		return o
	}
	for _, u := range a.Units {
		if u.IsValid() && len(u.Effects) > 0 {
			o = o.UpdateOutcome(worth(u), u.Cell, false)
		}
	}
	return o
}

// spellResurrectValue picks the own stack, alive or fallen, that regains
// the most strength.
func spellResurrectValue(a *battle.Arena, s battle.Spell, color world.Color, power int) SpellcastOutcome {
	o := newSpellcastOutcome()
	for _, u := range a.Force(color) {
		if u.MissingHitPoints() == 0 || u.Undead != (s.ID == battle.SpellAnimateDead) {
			continue
		}
		if u.IsValid() {
			if a.UnitAt(u.Cell) != u {
				continue
			}
		} else if a.GraveAt(u.Cell, color) != u || !a.IsPassable(u.Cell) {
			continue
		}
		revived := min(s.Restore*power/max(u.HitPoints, 1), u.InitialCount-u.Count)
		v := float64(revived) * u.Strength
		if !s.IsPermanent() {
			v *= temporaryResurrectRatio
		}
		o = o.UpdateOutcome(v, u.Cell, false)
	}
	return o
}

// spellSummonValue is the strength of the summoned stack if there is room
// for it.
func spellSummonValue(a *battle.Arena, s battle.Spell, color world.Color, power int) SpellcastOutcome {
	o := newSpellcastOutcome()
	cell := a.SummonCell(color)
	if cell < 0 {
		return o
	}
	return o.UpdateOutcome(battle.SummonedStrength(s, power), cell, false)
}

// spellEffectValue scores a buff or debuff over every stack it could land
// on.
func (t *unitTurn) spellEffectValue(s battle.Spell, power int) SpellcastOutcome {
	o := newSpellcastOutcome()
	color := t.state.Color
	if s.Mass || s.Global {
		for _, u := range t.arena.SpellTargets(s, color, -1) {
			o = o.UpdateOutcome(t.spellEffectValueOn(s, u, power), -1, true)
		}
		return o
	}
	candidates := t.arena.EnemyUnits(color)
	if s.Friendly {
		candidates = t.arena.AliveUnits(color)
	}
	for _, u := range candidates {
		o = o.UpdateOutcome(t.spellEffectValueOn(s, u, power), u.Cell, false)
	}
	return o
}

// spellEffectValueOn is the strength an effect adds to an own stack or
// takes from an enemy one.
func (t *unitTurn) spellEffectValueOn(s battle.Spell, u *battle.Unit, power int) float64 {
	if (u.Color == t.state.Color) != s.Friendly {
		return 0
	}
	if u.UnderEffect(battle.SpellAntimagic) > 0 && s.ID != battle.SpellAntimagic {
		return 0
	}
	id := battle.BaseEffect(s.ID)
	if u.UnderEffect(id) > 0 {
		return 0
	}

	ratio := 0.0
	switch id {
	case battle.SpellDisruptingRay:
		// Permanent, so no duration scaling.
		return u.TotalStrength() * getSpellDisruptingRayRatio(u, s)
	case battle.SpellSlow:
		ratio = getSpellSlowRatio(u)
	case battle.SpellHaste:
		ratio = getSpellHasteRatio(u, s)
	case battle.SpellBlind:
		if !u.IsImmovable() {
			ratio = blindRatio
		}
	case battle.SpellParalyze:
		if !u.IsImmovable() {
			ratio = paralyzeRatio
		}
	case battle.SpellCurse, battle.SpellBless:
		if spread := u.DamageMin + u.DamageMax; spread > 0 {
			ratio = float64(u.DamageMax-u.DamageMin) / float64(spread)
		}
	case battle.SpellBerserker:
		ratio = berserkRatio
	case battle.SpellHypnotize:
		ratio = hypnotizeRatio
	case battle.SpellBloodlust:
		ratio = 0.1 * float64(s.Extra)
	case battle.SpellStoneskin, battle.SpellSteelskin:
		if u.UnderEffect(battle.SpellStoneskin) == 0 && u.UnderEffect(battle.SpellSteelskin) == 0 {
			ratio = 0.05 * float64(s.Extra)
		}
	case battle.SpellShield:
		if t.state.EnemyArmyStrength > 0 {
			ratio = 0.5 * t.state.EnemyShooterStrength / t.state.EnemyArmyStrength
		}
	case battle.SpellAntimagic:
		if t.state.EnemySpellStrength > 0 {
			ratio = antimagicRatio
		}
	}
	return u.TotalStrength() * ratio * spellDurationMultiplier(u, power)
}

// spellDurationMultiplier weighs an effect lasting duration rounds. A unit
// that already acted this round loses the first of them. Three rounds or
// more count in full.
func spellDurationMultiplier(u *battle.Unit, duration int) float64 {
	if u.Has(battle.ModeMoved) {
		duration--
	}
	if duration <= 0 {
		return 0
	}
	return math.Min(float64(duration), 3) / 3
}

// getSpellDisruptingRayRatio values each defense point removed at 5%.
func getSpellDisruptingRayRatio(u *battle.Unit, s battle.Spell) float64 {
	return 0.05 * float64(min(s.Extra, u.Defense))
}

// getSpellSlowRatio values the speed a slow would take away. Shooters
// barely need speed.
func getSpellSlowRatio(u *battle.Unit) float64 {
	if u.Has(battle.ModeSlowed) || u.IsImmovable() {
		return 0
	}
	lost := u.Speed - (u.Speed+1)/2
	ratio := 0.1 * float64(lost)
	if u.IsArcher() {
		ratio /= 2
	}
	return ratio
}

// getSpellHasteRatio values the speed a haste would add.
func getSpellHasteRatio(u *battle.Unit, s battle.Spell) float64 {
	if u.Has(battle.ModeHasted) || u.IsImmovable() {
		return 0
	}
	ratio := 0.1 * float64(s.Extra)
	if u.IsArcher() {
		ratio /= 2
	}
	return ratio
}
