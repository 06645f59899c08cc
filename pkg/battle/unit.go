package battle

import (
	"math"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

// Mode is a bit set of transient unit states.
type Mode uint16

const (
	ModeMoved Mode = 1 << iota
	ModeBerserk
	ModeSlowed
	ModeHasted
	ModeBlinded
	ModeParalyzed
	ModePetrified
	ModeHypnotized
	ModeRetaliated
	ModeSummoned
)

// Effect is a spell still acting on a unit.
type Effect struct {
	Spell    SpellID `yaml:"spell" json:"spell"`
	Duration int     `yaml:"duration" json:"duration"`
}

// Unit is one creature stack on the battlefield.
type Unit struct {
	UID          uint32      `yaml:"uid" json:"uid"`
	Name         string      `yaml:"name" json:"name"`
	Color        world.Color `yaml:"color" json:"color"`
	Count        int         `yaml:"count" json:"count"`
	InitialCount int         `yaml:"initial_count" json:"initial_count"`
	HitPoints    int         `yaml:"hit_points" json:"hit_points"` // per creature
	Attack       int         `yaml:"attack" json:"attack"`
	Defense      int         `yaml:"defense" json:"defense"`
	DamageMin    int         `yaml:"damage_min" json:"damage_min"`
	DamageMax    int         `yaml:"damage_max" json:"damage_max"`
	Speed        int         `yaml:"speed" json:"speed"`
	Initiative   int         `yaml:"initiative" json:"initiative"`
	Flying       bool        `yaml:"flying" json:"flying"`
	Archer       bool        `yaml:"archer" json:"archer"`
	Shots        int         `yaml:"shots" json:"shots"`
	Undead       bool        `yaml:"undead" json:"undead"`
	Strength     float64     `yaml:"strength" json:"strength"` // per creature
	Cell         int         `yaml:"cell" json:"cell"`
	Modes        Mode        `yaml:"-" json:"modes"`
	Effects      []Effect    `yaml:"effects" json:"effects,omitempty"`
}

// IsValid reports whether any creature of the stack is alive.
func (u *Unit) IsValid() bool { return u.Count > 0 }

// IsArcher reports whether the stack can shoot.
func (u *Unit) IsArcher() bool { return u.Archer && u.Shots > 0 }

// Has reports whether every bit of m is set.
func (u *Unit) Has(m Mode) bool { return u.Modes&m == m }

// IsImmovable reports whether the unit loses its turn.
func (u *Unit) IsImmovable() bool {
	return u.Modes&(ModeBlinded|ModeParalyzed|ModePetrified) != 0
}

// TotalStrength is the stack's strength estimate.
func (u *Unit) TotalStrength() float64 {
	return float64(u.Count) * u.Strength
}

// MissingHitPoints is the health lost since the battle started.
func (u *Unit) MissingHitPoints() int {
	return max(u.InitialCount-u.Count, 0) * u.HitPoints
}

// UnderEffect returns the remaining duration of a spell, or 0.
func (u *Unit) UnderEffect(id SpellID) int {
	for _, e := range u.Effects {
		if e.Spell == id {
			return e.Duration
		}
	}
	return 0
}

// EffectiveSpeed is the movement range this turn.
func (u *Unit) EffectiveSpeed() int {
	if u.IsImmovable() {
		return 0
	}
	speed := u.Speed
	if u.Has(ModeSlowed) {
		speed = (speed + 1) / 2
	}
	if u.Has(ModeHasted) {
		speed += 2
	}
	return speed
}

func (u *Unit) effectiveAttack() int {
	if u.UnderEffect(SpellBloodlust) > 0 {
		return u.Attack + 3
	}
	return u.Attack
}

func (u *Unit) effectiveDefense() int {
	d := u.Defense
	switch {
	case u.UnderEffect(SpellSteelskin) > 0:
		d += 5
	case u.UnderEffect(SpellStoneskin) > 0:
		d += 3
	}
	return d
}

func (u *Unit) baseDamage() float64 {
	switch {
	case u.UnderEffect(SpellBless) > 0:
		return float64(u.DamageMax)
	case u.UnderEffect(SpellCurse) > 0:
		return float64(u.DamageMin)
	}
	return float64(u.DamageMin+u.DamageMax) / 2
}

// AverageDamage estimates the damage the whole stack deals to target in one
// strike. Each attack point over the target's defense adds 10% up to 300%;
// each point under removes 5% down to 30%.
func (u *Unit) AverageDamage(target *Unit) float64 {
	return u.damageWith(u.Count, target)
}

func (u *Unit) damageWith(count int, target *Unit) float64 {
	diff := u.effectiveAttack() - target.effectiveDefense()
	mod := 1.0
	if diff > 0 {
		mod = math.Min(1+0.1*float64(diff), 3.0)
	} else if diff < 0 {
		mod = math.Max(1+0.05*float64(diff), 0.3)
	}
	dmg := u.baseDamage() * float64(count) * mod
	if u.IsArcher() && target.UnderEffect(SpellShield) > 0 {
		dmg /= 2
	}
	return dmg
}

// Kills returns how many creatures the given damage would slay.
func (u *Unit) Kills(damage float64) int {
	if u.HitPoints <= 0 {
		return u.Count
	}
	return min(int(damage)/u.HitPoints, u.Count)
}

// RetaliationDamage estimates the strike back after taking incoming damage.
func (u *Unit) RetaliationDamage(attacker *Unit, incoming float64) float64 {
	survivors := u.Count - u.Kills(incoming)
	if survivors <= 0 || u.Has(ModeRetaliated) || u.IsImmovable() {
		return 0
	}
	return u.damageWith(survivors, attacker)
}

func (u *Unit) addEffect(id SpellID, duration int) {
	for i := range u.Effects {
		if u.Effects[i].Spell == id {
			u.Effects[i].Duration = max(u.Effects[i].Duration, duration)
			return
		}
	}
	u.Effects = append(u.Effects, Effect{Spell: id, Duration: duration})
}

var effectModes = map[SpellID]Mode{
	SpellSlow:      ModeSlowed,
	SpellMassSlow:  ModeSlowed,
	SpellHaste:     ModeHasted,
	SpellMassHaste: ModeHasted,
	SpellBlind:     ModeBlinded,
	SpellParalyze:  ModeParalyzed,
	SpellBerserker: ModeBerserk,
	SpellHypnotize: ModeHypnotized,
}

// clearEffects removes every spell and the modes they grant.
func (u *Unit) clearEffects() {
	for _, e := range u.Effects {
		u.Modes &^= effectModes[e.Spell]
	}
	u.Effects = nil
}

// tickEffects shortens every effect by one round.
func (u *Unit) tickEffects() {
	kept := u.Effects[:0]
	for _, e := range u.Effects {
		e.Duration--
		if e.Duration > 0 {
			kept = append(kept, e)
			continue
		}
		u.Modes &^= effectModes[e.Spell]
	}
	u.Effects = kept
}
