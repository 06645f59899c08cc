package world

import "sort"

// Role selects how a hero values map objects.
type Role string

const (
	RoleHunter  Role = "hunter"
	RoleFighter Role = "fighter"
)

// Artifact is an item carried by a hero.
type Artifact struct {
	Name  string `yaml:"name" json:"name"`
	Value int    `yaml:"value" json:"value"`
}

// Hero is an adventure-map army leader.
type Hero struct {
	ID            int        `yaml:"id" json:"id"`
	Name          string     `yaml:"name" json:"name"`
	Color         Color      `yaml:"color" json:"color"`
	Index         int        `yaml:"-" json:"index"`
	Role          Role       `yaml:"role" json:"role"`
	Level         int        `yaml:"level" json:"level"`
	MovePoints    int        `yaml:"move_points" json:"move_points"`
	MaxMovePoints int        `yaml:"max_move_points" json:"max_move_points"`
	ScoutRadius   int        `yaml:"scout_radius" json:"scout_radius"`
	Army          Army       `yaml:"army" json:"army"`
	Artifacts     []Artifact `yaml:"artifacts" json:"artifacts,omitempty"`
	Patrol        bool       `yaml:"patrol" json:"patrol,omitempty"`
	PatrolCenter  int        `yaml:"-" json:"patrol_center,omitempty"`
	PatrolRadius  int        `yaml:"patrol_radius" json:"patrol_radius,omitempty"`
	SpellPower    int        `yaml:"spell_power" json:"spell_power"`
	SpellPoints   int        `yaml:"spell_points" json:"spell_points"`
	Spells        []string   `yaml:"spells" json:"spells,omitempty"`
	MaxSpellTier  int        `yaml:"max_spell_tier" json:"max_spell_tier"`
	Dead          bool       `yaml:"-" json:"dead,omitempty"`
}

// MayStillMove reports whether the hero can take another step today.
func (h *Hero) MayStillMove() bool {
	return !h.Dead && h.MovePoints > 0 && !h.Army.IsEmpty()
}

// Recruit is a creature stack a castle can hire.
type Recruit struct {
	Troop `yaml:",inline"`
	Cost  int `yaml:"cost" json:"cost"` // gold per creature
}

// Castle is a town or fortified castle.
type Castle struct {
	ID       int       `yaml:"id" json:"id"`
	Name     string    `yaml:"name" json:"name"`
	Color    Color     `yaml:"color" json:"color"`
	Index    int       `yaml:"-" json:"index"`
	IsCastle bool      `yaml:"is_castle" json:"is_castle"`
	Army     Army      `yaml:"army" json:"army"`
	Built    []string  `yaml:"built" json:"built"`
	Recruits []Recruit `yaml:"recruits" json:"recruits,omitempty"`
}

// fortBonus multiplies the garrison of fortified castles.
const fortBonus = 1.25

// HasBuilding reports whether the named building exists.
func (c *Castle) HasBuilding(name string) bool {
	for _, b := range c.Built {
		if b == name {
			return true
		}
	}
	return false
}

// BuildingValue sums catalog values of constructed buildings.
func (c *Castle) BuildingValue() int {
	total := 0
	for _, name := range c.Built {
		if b, ok := BuildingByName(name); ok {
			total += b.Value
		}
	}
	return total
}

// BuildOptions returns buildings whose prerequisites are met and that are
// not built yet, in catalog order.
func (c *Castle) BuildOptions() []Building {
	var out []Building
	for _, b := range buildingCatalog {
		if c.HasBuilding(b.Name) || (b.RequiresCastle && !c.IsCastle) {
			continue
		}
		ok := true
		for _, req := range b.Requires {
			if !c.HasBuilding(req) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, b)
		}
	}
	return out
}

// Kingdom is one player's realm.
type Kingdom struct {
	Color     Color     `yaml:"color" json:"color"`
	Gold      int       `yaml:"gold" json:"gold"`
	Income    int       `yaml:"income" json:"income"`
	Lost      bool      `yaml:"lost" json:"lost"`
	AI        bool      `yaml:"ai" json:"ai"`
	Heroes    []*Hero   `yaml:"-" json:"-"`
	Castles   []*Castle `yaml:"-" json:"-"`
	HeroLimit int       `yaml:"hero_limit" json:"hero_limit"`
}

// Observer is notified by the world about events the AI caches depend on.
type Observer interface {
	RevealFog(tile *Tile)
	HeroesPreBattle(hero *Hero, attacking bool)
	HeroesActionComplete(hero *Hero)
}

// World owns all adventure-map state.
type World struct {
	Map      *Map
	Day      int
	Kingdoms []*Kingdom
	Heroes   []*Hero
	Castles  []*Castle

	observers  []Observer
	nextHeroID int
}

// NewWorld wraps a map into an empty world.
func NewWorld(m *Map) *World {
	return &World{Map: m, Day: 1, nextHeroID: 1}
}

// AddObserver registers an observer for world events.
func (w *World) AddObserver(o Observer) {
	w.observers = append(w.observers, o)
}

// AddKingdom registers a kingdom.
func (w *World) AddKingdom(k *Kingdom) {
	w.Kingdoms = append(w.Kingdoms, k)
}

// AddHero places a hero on the map and attaches it to its kingdom.
func (w *World) AddHero(h *Hero) {
	if h.ID == 0 {
		h.ID = w.nextHeroID
	}
	if h.ID >= w.nextHeroID {
		w.nextHeroID = h.ID + 1
	}
	if h.Role == "" {
		h.Role = RoleHunter
	}
	if !h.Patrol {
		h.PatrolCenter = -1
	}
	w.Heroes = append(w.Heroes, h)
	if k := w.Kingdom(h.Color); k != nil {
		k.Heroes = append(k.Heroes, h)
	}
	w.Map.Reveal(h.Index, h.ScoutRadius, h.Color)
}

// AddCastle places a castle on the map and attaches it to its kingdom.
func (w *World) AddCastle(c *Castle) {
	w.Castles = append(w.Castles, c)
	if k := w.Kingdom(c.Color); k != nil {
		k.Castles = append(k.Castles, c)
	}
	w.Map.Reveal(c.Index, 3, c.Color)
}

// Kingdom returns the kingdom of the color, or nil.
func (w *World) Kingdom(c Color) *Kingdom {
	for _, k := range w.Kingdoms {
		if k.Color == c {
			return k
		}
	}
	return nil
}

// HeroAt returns the living hero standing on idx, or nil.
func (w *World) HeroAt(idx int) *Hero {
	for _, h := range w.Heroes {
		if !h.Dead && h.Index == idx {
			return h
		}
	}
	return nil
}

// HeroByID returns the hero with the id, or nil.
func (w *World) HeroByID(id int) *Hero {
	for _, h := range w.Heroes {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// CastleAt returns the castle whose entrance is idx, or nil.
func (w *World) CastleAt(idx int) *Castle {
	for _, c := range w.Castles {
		if c.Index == idx {
			return c
		}
	}
	return nil
}

// CastleByID returns the castle with the id, or nil.
func (w *World) CastleByID(id int) *Castle {
	for _, c := range w.Castles {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ObjectAt reports what a hero would interact with on idx. Heroes and
// castles take precedence over the tile's own object.
func (w *World) ObjectAt(idx int) ObjectType {
	if w.HeroAt(idx) != nil {
		return ObjectHero
	}
	if w.CastleAt(idx) != nil {
		return ObjectCastle
	}
	if t := w.Map.Tile(idx); t != nil {
		return t.Object
	}
	return ObjectNone
}

// GarrisonStrength returns the defending strength of a castle including any
// hero standing in it.
func (w *World) GarrisonStrength(c *Castle) float64 {
	strength := c.Army.Strength()
	if h := w.HeroAt(c.Index); h != nil && h.Color == c.Color {
		strength += h.Army.Strength()
	}
	if c.IsCastle {
		strength *= fortBonus
	}
	return strength
}

// NewDay restores movement, pays income and grows castle recruits.
func (w *World) NewDay() {
	w.Day++
	for _, h := range w.Heroes {
		if !h.Dead {
			h.MovePoints = h.MaxMovePoints
		}
	}
	for _, k := range w.Kingdoms {
		if k.Lost {
			continue
		}
		k.Gold += k.Income
		for _, c := range k.Castles {
			for _, name := range c.Built {
				if b, ok := BuildingByName(name); ok {
					k.Gold += b.Income
				}
			}
		}
	}
	if w.Day%7 == 1 {
		for _, c := range w.Castles {
			for _, name := range c.Built {
				b, ok := BuildingByName(name)
				if !ok || b.Grants == nil {
					continue
				}
				c.addRecruits(*b.Grants, b.GrantCost)
			}
		}
	}
}

func (c *Castle) addRecruits(t Troop, cost int) {
	for i := range c.Recruits {
		if c.Recruits[i].Monster == t.Monster {
			c.Recruits[i].Count += t.Count
			return
		}
	}
	c.Recruits = append(c.Recruits, Recruit{Troop: t, Cost: cost})
}

func (w *World) removeHero(h *Hero) {
	h.Dead = true
	if k := w.Kingdom(h.Color); k != nil {
		k.Heroes = removeHeroFrom(k.Heroes, h)
	}
}

func (w *World) transferCastle(c *Castle, to Color) {
	if k := w.Kingdom(c.Color); k != nil {
		kept := k.Castles[:0]
		for _, other := range k.Castles {
			if other != c {
				kept = append(kept, other)
			}
		}
		k.Castles = kept
		if len(k.Castles) == 0 && len(k.Heroes) == 0 {
			k.Lost = true
		}
	}
	c.Color = to
	c.Army = Army{}
	if k := w.Kingdom(to); k != nil {
		k.Castles = append(k.Castles, c)
		sort.Slice(k.Castles, func(i, j int) bool { return k.Castles[i].ID < k.Castles[j].ID })
	}
}

func removeHeroFrom(heroes []*Hero, h *Hero) []*Hero {
	out := heroes[:0]
	for _, other := range heroes {
		if other != h {
			out = append(out, other)
		}
	}
	return out
}
