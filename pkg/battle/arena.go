package battle

import (
	"slices"
	"sort"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

// Siege walls occupy this column; the gate row stays open.
const (
	wallColumn = 8
	gateRow    = 4
)

// Arena is the battlefield state the planner reads and the resolver mutates.
type Arena struct {
	Units          []*Unit     `yaml:"units" json:"units"`
	Attacker       *Commander  `yaml:"attacker" json:"attacker,omitempty"`
	Defender       *Commander  `yaml:"defender" json:"defender,omitempty"`
	AttackerColor  world.Color `yaml:"attacker_color" json:"attacker_color"`
	DefenderColor  world.Color `yaml:"defender_color" json:"defender_color"`
	Obstacles      []int       `yaml:"obstacles" json:"obstacles,omitempty"`
	Siege          bool        `yaml:"siege" json:"siege"`
	SpellsDisabled bool        `yaml:"spells_disabled" json:"spells_disabled"`
	Round          int         `yaml:"-" json:"round"`
	Retreated      world.Color `yaml:"-" json:"retreated"`
}

// NewArena sets up a battle between two sides. Units are kept in UID order.
func NewArena(attacker, defender world.Color, units []*Unit) *Arena {
	a := &Arena{AttackerColor: attacker, DefenderColor: defender, Units: units}
	a.prepare()
	return a
}

func (a *Arena) prepare() {
	sort.Slice(a.Units, func(i, j int) bool { return a.Units[i].UID < a.Units[j].UID })
	for _, u := range a.Units {
		if u.InitialCount == 0 {
			u.InitialCount = u.Count
		}
	}
	if a.Round == 0 {
		a.Round = 1
	}
}

// Force returns every stack of the color, dead ones included, in UID order.
func (a *Arena) Force(c world.Color) []*Unit {
	var out []*Unit
	for _, u := range a.Units {
		if u.Color == c {
			out = append(out, u)
		}
	}
	return out
}

// AliveUnits returns the living stacks of the color in UID order.
func (a *Arena) AliveUnits(c world.Color) []*Unit {
	var out []*Unit
	for _, u := range a.Units {
		if u.Color == c && u.IsValid() {
			out = append(out, u)
		}
	}
	return out
}

// EnemyUnits returns the living stacks not of the color in UID order.
func (a *Arena) EnemyUnits(c world.Color) []*Unit {
	var out []*Unit
	for _, u := range a.Units {
		if u.Color != c && u.IsValid() {
			out = append(out, u)
		}
	}
	return out
}

// OpponentColor returns the other side's color.
func (a *Arena) OpponentColor(c world.Color) world.Color {
	if c == a.AttackerColor {
		return a.DefenderColor
	}
	return a.AttackerColor
}

// Commander returns the commander of the color's side, or nil.
func (a *Arena) Commander(c world.Color) *Commander {
	switch c {
	case a.AttackerColor:
		return a.Attacker
	case a.DefenderColor:
		return a.Defender
	}
	return nil
}

// EnemyCommander returns the opposing commander, or nil.
func (a *Arena) EnemyCommander(c world.Color) *Commander {
	return a.Commander(a.OpponentColor(c))
}

// CanRetreat reports whether the side may flee. Castle defenders and armies
// without a hero cannot.
func (a *Arena) CanRetreat(c world.Color) bool {
	cmd := a.Commander(c)
	if cmd == nil || !cmd.IsHero {
		return false
	}
	return !a.DefendingCastle(c)
}

// AttackingCastle reports whether the color is besieging a castle.
func (a *Arena) AttackingCastle(c world.Color) bool {
	return a.Siege && c == a.AttackerColor
}

// DefendingCastle reports whether the color is holding a castle.
func (a *Arena) DefendingCastle(c world.Color) bool {
	return a.Siege && c == a.DefenderColor
}

// IsCastleCell reports whether the cell lies behind the walls.
func (a *Arena) IsCastleCell(cell int) bool {
	x, _ := CellPoint(cell)
	return a.Siege && x > wallColumn
}

func (a *Arena) isWall(cell int) bool {
	x, y := CellPoint(cell)
	return a.Siege && x == wallColumn && y != gateRow
}

// UnitByUID returns the stack with the id, alive or not.
func (a *Arena) UnitByUID(uid uint32) *Unit {
	for _, u := range a.Units {
		if u.UID == uid {
			return u
		}
	}
	return nil
}

// UnitAt returns the living stack on cell, or nil.
func (a *Arena) UnitAt(cell int) *Unit {
	for _, u := range a.Units {
		if u.IsValid() && u.Cell == cell {
			return u
		}
	}
	return nil
}

// GraveAt returns the most recently slain stack of the color on cell.
func (a *Arena) GraveAt(cell int, c world.Color) *Unit {
	var found *Unit
	for _, u := range a.Units {
		if !u.IsValid() && u.Color == c && u.Cell == cell && !u.Has(ModeSummoned) {
			found = u
		}
	}
	return found
}

// IsPassable reports whether a unit may stand on cell.
func (a *Arena) IsPassable(cell int) bool {
	if !IsValidCell(cell) || a.isWall(cell) || slices.Contains(a.Obstacles, cell) {
		return false
	}
	return a.UnitAt(cell) == nil
}

// MoveDistances returns the step cost from the unit to every cell, -1 where
// it cannot go. Walkers route around obstacles; flyers only need a free
// landing cell.
func (a *Arena) MoveDistances(u *Unit) []int {
	dist := make([]int, BoardSize)
	for i := range dist {
		dist[i] = -1
	}
	if !IsValidCell(u.Cell) {
		return dist
	}
	dist[u.Cell] = 0
	if u.Flying {
		for cell := range BoardSize {
			if cell != u.Cell && a.IsPassable(cell) {
				dist[cell] = HexDistance(u.Cell, cell)
			}
		}
		return dist
	}
	queue := []int{u.Cell}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range Around(cur) {
			if dist[next] != -1 || !a.IsPassable(next) {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// Reachable returns every cell the unit can end its move on this turn,
// including its own, in ascending order.
func (a *Arena) Reachable(u *Unit) []int {
	speed := u.EffectiveSpeed()
	var out []int
	for cell, d := range a.MoveDistances(u) {
		if d >= 0 && d <= speed {
			out = append(out, cell)
		}
	}
	return out
}

// CanReach reports whether the unit can move to cell this turn.
func (a *Arena) CanReach(u *Unit, cell int) bool {
	if !IsValidCell(cell) {
		return false
	}
	d := a.MoveDistances(u)[cell]
	return d >= 0 && d <= u.EffectiveSpeed()
}

// AttackPositions returns reachable cells next to the target in ascending
// order.
func (a *Arena) AttackPositions(u, target *Unit) []int {
	var out []int
	for _, cell := range a.Reachable(u) {
		if IsNeighbour(cell, target.Cell) {
			out = append(out, cell)
		}
	}
	return out
}

// NearestReachableCell returns the reachable cell closest to goal, lowest
// index on ties.
func (a *Arena) NearestReachableCell(u *Unit, goal int) int {
	best, bestDist := u.Cell, HexDistance(u.Cell, goal)
	for _, cell := range a.Reachable(u) {
		if d := HexDistance(cell, goal); d < bestDist {
			best, bestDist = cell, d
		}
	}
	return best
}

// AdjacentEnemies returns living enemy stacks touching the unit.
func (a *Arena) AdjacentEnemies(u *Unit) []*Unit {
	var out []*Unit
	for _, e := range a.EnemyUnits(u.Color) {
		if IsNeighbour(u.Cell, e.Cell) {
			out = append(out, e)
		}
	}
	return out
}

// IsHandFighting reports whether an enemy blocks the unit from shooting.
func (a *Arena) IsHandFighting(u *Unit) bool {
	return len(a.AdjacentEnemies(u)) > 0
}

// SpellTargets returns the living stacks a spell cast by the color at cell
// would affect. Chain spells list the primary target first.
func (a *Arena) SpellTargets(s Spell, c world.Color, cell int) []*Unit {
	switch {
	case s.Global:
		var out []*Unit
		for _, u := range a.Units {
			if u.IsValid() {
				out = append(out, u)
			}
		}
		return out
	case s.Mass && s.Category == CategoryDispel:
		return a.SpellTargets(Spell{Global: true}, c, cell)
	case s.Mass && s.Friendly:
		return a.AliveUnits(c)
	case s.Mass:
		return a.EnemyUnits(c)
	case s.Area > 0:
		var out []*Unit
		for _, u := range a.Units {
			if u.IsValid() && HexDistance(u.Cell, cell) <= s.Area {
				out = append(out, u)
			}
		}
		return out
	}
	target := a.UnitAt(cell)
	if target == nil {
		return nil
	}
	out := []*Unit{target}
	if s.Chain {
		rest := a.EnemyUnits(c)
		rest = slices.DeleteFunc(rest, func(u *Unit) bool { return u == target })
		sort.SliceStable(rest, func(i, j int) bool {
			return HexDistance(rest[i].Cell, cell) < HexDistance(rest[j].Cell, cell)
		})
		out = append(out, rest[:min(len(rest), 3)]...)
	}
	return out
}

// SummonCell returns the first free cell on the color's edge of the board,
// or -1.
func (a *Arena) SummonCell(c world.Color) int {
	x := 0
	if c == a.DefenderColor {
		x = BoardWidth - 1
	}
	for y := range BoardHeight {
		if cell := CellIndex(x, y); a.IsPassable(cell) {
			return cell
		}
	}
	return -1
}

// NextUnit returns the stack that acts next this round: fastest first, then
// higher initiative, then lower UID. It returns nil when the round is over.
func (a *Arena) NextUnit() *Unit {
	var next *Unit
	for _, u := range a.Units {
		if !u.IsValid() || u.Has(ModeMoved) {
			continue
		}
		if next == nil || actsBefore(u, next) {
			next = u
		}
	}
	return next
}

func actsBefore(a, b *Unit) bool {
	if a.EffectiveSpeed() != b.EffectiveSpeed() {
		return a.EffectiveSpeed() > b.EffectiveSpeed()
	}
	if a.Initiative != b.Initiative {
		return a.Initiative > b.Initiative
	}
	return a.UID < b.UID
}

// NewRound resets per-round state and ages spell effects.
func (a *Arena) NewRound() {
	a.Round++
	for _, u := range a.Units {
		u.Modes &^= ModeMoved | ModeRetaliated
		u.tickEffects()
	}
	for _, cmd := range []*Commander{a.Attacker, a.Defender} {
		if cmd != nil {
			cmd.CastThisRound = false
		}
	}
}

// IsOver reports whether a side has no living stacks left.
func (a *Arena) IsOver() bool {
	return len(a.AliveUnits(a.AttackerColor)) == 0 || len(a.AliveUnits(a.DefenderColor)) == 0
}

// Winner returns the surviving side, or ColorNone while the battle goes on.
func (a *Arena) Winner() world.Color {
	switch {
	case !a.IsOver():
		return world.ColorNone
	case len(a.AliveUnits(a.AttackerColor)) > 0:
		return a.AttackerColor
	case len(a.AliveUnits(a.DefenderColor)) > 0:
		return a.DefenderColor
	}
	return world.ColorNone
}
