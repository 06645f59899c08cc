package world

import (
	"errors"
	"fmt"
)

// ActionType names a command issued against the world.
type ActionType string

const (
	ActionMoveHero      ActionType = "move_hero"
	ActionBuild         ActionType = "build"
	ActionRecruitTroops ActionType = "recruit_troops"
	ActionRecruitHero   ActionType = "recruit_hero"
)

// Action is a single adventure-map command.
type Action struct {
	Type     ActionType `json:"type"`
	Color    Color      `json:"color"`
	HeroID   int        `json:"hero_id,omitempty"`
	CastleID int        `json:"castle_id,omitempty"`
	Target   int        `json:"target,omitempty"`
	Path     []int      `json:"path,omitempty"`
	Building string     `json:"building,omitempty"`
	Troops   []Troop    `json:"troops,omitempty"`
	BuyArmy  bool       `json:"buy_army,omitempty"`
}

// Executor applies commands. The AI never mutates world state directly.
type Executor interface {
	Execute(a Action) error
}

var (
	ErrUnknownHero   = errors.New("unknown hero")
	ErrUnknownCastle = errors.New("unknown castle")
	ErrNotOwner      = errors.New("not owner")
	ErrInsufficient  = errors.New("insufficient gold")
)

// stepCost is the movement price of one tile.
const stepCost = 100

// heroCost is the price of hiring a hero.
const heroCost = 2500

// Execute applies an action in memory, notifying observers as the real
// simulation would.
func (w *World) Execute(a Action) error {
	switch a.Type {
	case ActionMoveHero:
		return w.moveHero(a)
	case ActionBuild:
		return w.build(a)
	case ActionRecruitTroops:
		return w.recruitTroops(a)
	case ActionRecruitHero:
		return w.recruitHero(a)
	default:
		return fmt.Errorf("execute: unknown action %q", a.Type)
	}
}

func (w *World) moveHero(a Action) error {
	h := w.HeroByID(a.HeroID)
	if h == nil || h.Dead {
		return fmt.Errorf("move hero %d: %w", a.HeroID, ErrUnknownHero)
	}
	if h.Color != a.Color {
		return fmt.Errorf("move hero %d: %w", a.HeroID, ErrNotOwner)
	}
	for _, next := range a.Path {
		if h.MovePoints < stepCost {
			h.MovePoints = 0
			break
		}
		if next == a.Target && w.ObjectAt(next) != ObjectNone {
			h.MovePoints -= stepCost
			w.interact(h, next)
			break
		}
		h.MovePoints -= stepCost
		h.Index = next
		w.reveal(h)
	}
	for _, o := range w.observers {
		o.HeroesActionComplete(h)
	}
	return nil
}

func (w *World) reveal(h *Hero) {
	for _, idx := range w.Map.Reveal(h.Index, h.ScoutRadius, h.Color) {
		for _, o := range w.observers {
			o.RevealFog(w.Map.Tile(idx))
		}
	}
}

// interact resolves a hero stepping onto an occupied tile.
func (w *World) interact(h *Hero, idx int) {
	tile := w.Map.Tile(idx)
	k := w.Kingdom(h.Color)

	if other := w.HeroAt(idx); other != nil {
		if other.Color == h.Color {
			return
		}
		if w.fight(h, other.Army.Strength()) {
			w.removeHero(other)
			h.Index = idx
		}
		return
	}
	if c := w.CastleAt(idx); c != nil {
		if c.Color != h.Color {
			if !w.fight(h, w.GarrisonStrength(c)) {
				return
			}
			w.transferCastle(c, h.Color)
		} else {
			// A visiting hero takes the garrison along.
			h.Army.Join(c.Army.Troops...)
			c.Army = Army{}
		}
		h.Index = idx
		return
	}

	switch obj := tile.Object; {
	case obj == ObjectMonster:
		if w.fight(h, tile.Guard) {
			tile.ClearObject()
			h.Index = idx
		}
	case obj.IsCapture():
		if tile.Guard > 0 {
			if !w.fight(h, tile.Guard) {
				return
			}
			tile.Guard = 0
		}
		tile.Owner = h.Color
		if k != nil {
			k.Income += captureIncome(tile)
		}
	case obj == ObjectArtifact:
		h.Artifacts = append(h.Artifacts, Artifact{Name: tile.Resource, Value: int(tile.Value)})
		tile.ClearObject()
		h.Index = idx
	case obj.IsPickup():
		if k != nil {
			k.Gold += tile.Quantity
		}
		tile.ClearObject()
		h.Index = idx
	case obj.IsQuantity():
		if k != nil {
			k.Gold += tile.Quantity
		}
		tile.Quantity = 0
	case obj == ObjectDwelling:
		h.Army.Join(Troop{Monster: tile.Resource, Count: tile.Quantity, Strength: tile.Value})
		tile.Quantity = 0
	case obj.IsVisitOnce():
		if tile.VisitedBy(h.ID) {
			return
		}
		tile.Visitors = append(tile.Visitors, h.ID)
		switch obj {
		case ObjectXanadu:
			h.Level += 2
		case ObjectHeroUpgrade:
			h.Level++
		case ObjectObservationTower:
			for _, revealed := range w.Map.Reveal(idx, 10, h.Color) {
				for _, o := range w.observers {
					o.RevealFog(w.Map.Tile(revealed))
				}
			}
		}
	}
}

func captureIncome(t *Tile) int {
	switch t.Object {
	case ObjectMine:
		if t.Resource == "gold" {
			return 1000
		}
		return 250
	case ObjectSawmill, ObjectAlchemyLab:
		return 200
	}
	return 0
}

// fight resolves a map battle with the square law and reports whether the
// hero won. A losing hero is removed from play.
func (w *World) fight(h *Hero, defender float64) bool {
	for _, o := range w.observers {
		o.HeroesPreBattle(h, true)
	}
	attacker := h.Army.Strength()
	if attacker <= defender {
		w.removeHero(h)
		return false
	}
	h.Army.Scale(survivingFraction(attacker, defender))
	if h.Army.IsEmpty() {
		w.removeHero(h)
		return false
	}
	return true
}

func (w *World) ownedCastle(a Action) (*Castle, *Kingdom, error) {
	c := w.CastleByID(a.CastleID)
	if c == nil {
		return nil, nil, fmt.Errorf("castle %d: %w", a.CastleID, ErrUnknownCastle)
	}
	if c.Color != a.Color {
		return nil, nil, fmt.Errorf("castle %d: %w", a.CastleID, ErrNotOwner)
	}
	k := w.Kingdom(c.Color)
	if k == nil {
		return nil, nil, fmt.Errorf("castle %d: no kingdom for %s", a.CastleID, c.Color)
	}
	return c, k, nil
}

func (w *World) build(a Action) error {
	c, k, err := w.ownedCastle(a)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	b, ok := BuildingByName(a.Building)
	if !ok {
		return fmt.Errorf("build: unknown building %q", a.Building)
	}
	if k.Gold < b.Cost {
		return fmt.Errorf("build %s: %w", b.Name, ErrInsufficient)
	}
	k.Gold -= b.Cost
	c.Built = append(c.Built, b.Name)
	if b.Grants != nil {
		c.addRecruits(*b.Grants, b.GrantCost)
	}
	return nil
}

func (w *World) recruitTroops(a Action) error {
	c, k, err := w.ownedCastle(a)
	if err != nil {
		return fmt.Errorf("recruit troops: %w", err)
	}
	for _, want := range a.Troops {
		for i := range c.Recruits {
			r := &c.Recruits[i]
			if r.Monster != want.Monster {
				continue
			}
			count := min(want.Count, r.Count)
			if r.Cost > 0 {
				count = min(count, k.Gold/r.Cost)
			}
			if count <= 0 {
				continue
			}
			k.Gold -= count * r.Cost
			r.Count -= count
			target := &c.Army
			if h := w.HeroAt(c.Index); h != nil && h.Color == c.Color {
				target = &h.Army
			}
			target.Join(Troop{Monster: r.Monster, Count: count, Strength: r.Strength})
		}
	}
	return nil
}

func (w *World) recruitHero(a Action) error {
	c, k, err := w.ownedCastle(a)
	if err != nil {
		return fmt.Errorf("recruit hero: %w", err)
	}
	if w.HeroAt(c.Index) != nil {
		return fmt.Errorf("recruit hero: castle %d entrance occupied", c.ID)
	}
	if k.Gold < heroCost {
		return fmt.Errorf("recruit hero: %w", ErrInsufficient)
	}
	k.Gold -= heroCost
	role := RoleHunter
	if len(k.Heroes)%2 == 1 {
		role = RoleFighter
	}
	h := &Hero{
		Name:          fmt.Sprintf("%s-hero-%d", k.Color, w.nextHeroID),
		Color:         k.Color,
		Index:         c.Index,
		Role:          role,
		Level:         1,
		MovePoints:    1500,
		MaxMovePoints: 1500,
		ScoutRadius:   2,
		MaxSpellTier:  1,
		Army:          Army{Troops: []Troop{{Monster: "peasant", Count: 10, Strength: 1}}},
	}
	if a.BuyArmy {
		h.Army.Join(c.Army.Troops...)
		c.Army = Army{}
	}
	w.AddHero(h)
	return nil
}
