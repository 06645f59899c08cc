package battle

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

var (
	ErrUnreachable = errors.New("cell unreachable")
	ErrNoTarget    = errors.New("no target")
	ErrCannotCast  = errors.New("cannot cast")
)

// Apply resolves one unit's actions with average damage and marks the unit
// as having moved. Resolution stops at the first illegal action.
func (a *Arena) Apply(actor *Unit, actions Actions) error {
	defer func() { actor.Modes |= ModeMoved }()
	for _, act := range actions {
		var err error
		switch act.Type {
		case ActionMove:
			err = a.move(actor, act.Cell)
		case ActionAttack:
			err = a.attack(actor, act)
		case ActionCast:
			err = a.cast(actor.Color, act.Spell, act.TargetCell)
		case ActionRetreat:
			if !a.CanRetreat(actor.Color) {
				err = fmt.Errorf("%s may not retreat", actor.Color)
				break
			}
			for _, u := range a.Force(actor.Color) {
				u.Count = 0
			}
			a.Retreated = actor.Color
		case ActionSkip:
		default:
			err = fmt.Errorf("unknown action %q", act.Type)
		}
		if err != nil {
			return fmt.Errorf("unit %d %s: %w", actor.UID, act.Type, err)
		}
	}
	return nil
}

func (a *Arena) move(u *Unit, cell int) error {
	if cell < 0 || cell == u.Cell {
		return nil
	}
	if !a.CanReach(u, cell) {
		return fmt.Errorf("%d: %w", cell, ErrUnreachable)
	}
	u.Cell = cell
	return nil
}

func (a *Arena) attack(u *Unit, act Action) error {
	target := a.UnitByUID(act.Target)
	if target == nil || !target.IsValid() {
		return fmt.Errorf("uid %d: %w", act.Target, ErrNoTarget)
	}
	if err := a.move(u, act.Cell); err != nil {
		return err
	}
	if u.IsArcher() && !a.IsHandFighting(u) {
		u.Shots--
		a.damage(target, u.AverageDamage(target))
		return nil
	}
	if !IsNeighbour(u.Cell, target.Cell) {
		return fmt.Errorf("uid %d not adjacent: %w", target.UID, ErrNoTarget)
	}
	dmg := u.AverageDamage(target)
	if u.Archer {
		dmg /= 2
	}
	back := target.RetaliationDamage(u, dmg)
	a.damage(target, dmg)
	if back > 0 {
		target.Modes |= ModeRetaliated
		a.damage(u, back)
	}
	return nil
}

func (a *Arena) damage(u *Unit, dmg float64) {
	u.Count -= u.Kills(dmg)
}

func (a *Arena) cast(c world.Color, id SpellID, cell int) error {
	cmd := a.Commander(c)
	s, ok := SpellByID(id)
	if !ok || cmd == nil || a.SpellsDisabled || cmd.Silenced || cmd.CastThisRound || !cmd.CanCast(id) {
		return fmt.Errorf("%s: %w", id, ErrCannotCast)
	}
	power := max(cmd.Power, 1)

	switch s.Category {
	case CategoryResurrect:
		return a.resurrect(cmd, s, c, cell, power)
	case CategorySummon:
		return a.summon(cmd, s, c, cell, power)
	}

	targets := a.SpellTargets(s, c, cell)
	if len(targets) == 0 {
		return fmt.Errorf("%s at %d: %w", id, cell, ErrNoTarget)
	}
	cmd.SpellPoints -= s.Cost
	cmd.CastThisRound = true

	for i, u := range targets {
		switch s.Category {
		case CategoryDamage:
			dmg := float64(s.Damage * power)
			if s.Chain && i > 0 {
				dmg /= float64(int(1) << i)
			}
			a.damage(u, dmg)
		case CategoryDispel:
			u.clearEffects()
		case CategoryEffect:
			a.applyEffect(u, s, power)
		}
	}
	return nil
}

func (a *Arena) applyEffect(u *Unit, s Spell, power int) {
	if u.UnderEffect(SpellAntimagic) > 0 && s.ID != SpellAntimagic {
		return
	}
	if s.ID == SpellDisruptingRay {
		u.Defense = max(u.Defense-s.Extra, 0)
		return
	}
	id := BaseEffect(s.ID)
	if id == SpellAntimagic {
		u.clearEffects()
	}
	u.addEffect(id, power)
	u.Modes |= effectModes[id]
}

func (a *Arena) resurrect(cmd *Commander, s Spell, c world.Color, cell, power int) error {
	target := a.UnitAt(cell)
	if target == nil {
		target = a.GraveAt(cell, c)
		if target == nil || !a.IsPassable(cell) {
			return fmt.Errorf("%s at %d: %w", s.ID, cell, ErrNoTarget)
		}
	}
	if target.Color != c || target.MissingHitPoints() == 0 || target.Undead != (s.ID == SpellAnimateDead) {
		return fmt.Errorf("%s at %d: %w", s.ID, cell, ErrNoTarget)
	}
	cmd.SpellPoints -= s.Cost
	cmd.CastThisRound = true
	revived := min(s.Restore*power/max(target.HitPoints, 1), target.InitialCount-target.Count)
	target.Count += revived
	return nil
}

func (a *Arena) summon(cmd *Commander, s Spell, c world.Color, cell, power int) error {
	if !a.IsPassable(cell) {
		return fmt.Errorf("%s at %d: %w", s.ID, cell, ErrNoTarget)
	}
	cmd.SpellPoints -= s.Cost
	cmd.CastThisRound = true
	var uid uint32
	for _, u := range a.Units {
		uid = max(uid, u.UID)
	}
	count := summonedCount(s, power)
	a.Units = append(a.Units, &Unit{
		UID: uid + 1, Name: string(s.ID) + "_elemental", Color: c,
		Count: count, InitialCount: count, HitPoints: 50,
		Attack: 8, Defense: 8, DamageMin: 4, DamageMax: 6,
		Speed: 4, Initiative: 4, Strength: elementalStrength, Cell: cell,
		Modes: ModeSummoned | ModeMoved,
	})
	return nil
}

const elementalStrength = 12

func summonedCount(s Spell, power int) int {
	return int(s.Summon) * max(power, 1)
}

// SummonedStrength is the strength of the stack a summon spell would add.
func SummonedStrength(s Spell, power int) float64 {
	if s.Category != CategorySummon {
		return 0
	}
	return float64(summonedCount(s, power)) * elementalStrength
}

// LoadArena reads a YAML battle description.
func LoadArena(path string) (*Arena, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading battle: %w", err)
	}
	a, err := ParseArena(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// ParseArena decodes and validates a YAML battle description.
func ParseArena(data []byte) (*Arena, error) {
	var a Arena
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing battle: %w", err)
	}
	if a.AttackerColor == world.ColorNone || a.AttackerColor == a.DefenderColor {
		return nil, fmt.Errorf("battle needs two distinct sides, got %s and %s", a.AttackerColor, a.DefenderColor)
	}
	seen := make(map[uint32]bool)
	occupied := make(map[int]bool)
	for _, u := range a.Units {
		if seen[u.UID] {
			return nil, fmt.Errorf("duplicate unit uid %d", u.UID)
		}
		if !IsValidCell(u.Cell) || occupied[u.Cell] {
			return nil, fmt.Errorf("unit %d: bad or occupied cell %d", u.UID, u.Cell)
		}
		seen[u.UID] = true
		occupied[u.Cell] = true
	}
	a.prepare()
	return &a, nil
}
