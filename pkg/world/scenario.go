package world

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Scenario is the YAML description of a starting world.
type Scenario struct {
	Width    int              `yaml:"width"`
	Height   int              `yaml:"height"`
	Day      int              `yaml:"day"`
	Regions  []string         `yaml:"regions"` // one row per line, base-36 region ids
	Blocked  []string         `yaml:"blocked"` // '#' marks an impassable tile
	Revealed []Color          `yaml:"revealed"`
	Objects  []scenarioObject `yaml:"objects"`
	Kingdoms []Kingdom        `yaml:"kingdoms"`
	Heroes   []scenarioHero   `yaml:"heroes"`
	Castles  []scenarioCastle `yaml:"castles"`
}

type scenarioObject struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	Tile `yaml:",inline"`
}

type scenarioHero struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	Hero `yaml:",inline"`
}

type scenarioCastle struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Castle `yaml:",inline"`
}

// LoadScenario reads a scenario file and builds the world it describes.
func LoadScenario(path string) (*World, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	w, err := ParseScenario(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// ParseScenario builds a world from YAML scenario data.
func ParseScenario(data []byte) (*World, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return s.Build()
}

// Build converts the scenario into a world.
func (s *Scenario) Build() (*World, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", s.Width, s.Height)
	}
	m := NewMap(s.Width, s.Height)
	if err := s.applyRows(m); err != nil {
		return nil, err
	}
	m.RebuildRegions()

	for _, c := range s.Revealed {
		for i := range m.Tiles {
			m.Tiles[i].Explored |= c
		}
	}

	for _, o := range s.Objects {
		idx := m.Index(o.X, o.Y)
		if idx < 0 {
			return nil, fmt.Errorf("object %s at (%d,%d) is off the map", o.Object, o.X, o.Y)
		}
		t := &m.Tiles[idx]
		t.Object = o.Object
		t.Owner = o.Owner
		t.Resource = o.Resource
		t.Quantity = o.Quantity
		t.Value = o.Value
		t.Guard = o.Guard
	}

	w := NewWorld(m)
	if s.Day > 0 {
		w.Day = s.Day
	}
	for i := range s.Kingdoms {
		k := s.Kingdoms[i]
		k.Heroes = nil
		k.Castles = nil
		w.AddKingdom(&k)
	}
	for _, sc := range s.Castles {
		idx := m.Index(sc.X, sc.Y)
		if idx < 0 {
			return nil, fmt.Errorf("castle %q at (%d,%d) is off the map", sc.Name, sc.X, sc.Y)
		}
		c := sc.Castle
		c.Index = idx
		if c.ID == 0 {
			c.ID = len(w.Castles) + 1
		}
		w.AddCastle(&c)
	}
	for _, sh := range s.Heroes {
		idx := m.Index(sh.X, sh.Y)
		if idx < 0 {
			return nil, fmt.Errorf("hero %q at (%d,%d) is off the map", sh.Name, sh.X, sh.Y)
		}
		h := sh.Hero
		h.Index = idx
		if h.Patrol {
			h.PatrolCenter = idx
		}
		if h.MaxMovePoints == 0 {
			h.MaxMovePoints = 1500
		}
		if h.MovePoints == 0 {
			h.MovePoints = h.MaxMovePoints
		}
		if h.ScoutRadius == 0 {
			h.ScoutRadius = 2
		}
		if h.Level == 0 {
			h.Level = 1
		}
		w.AddHero(&h)
	}
	return w, nil
}

func (s *Scenario) applyRows(m *Map) error {
	if len(s.Regions) > 0 && len(s.Regions) != s.Height {
		return fmt.Errorf("regions: got %d rows, want %d", len(s.Regions), s.Height)
	}
	for y, row := range s.Regions {
		if len(row) != s.Width {
			return fmt.Errorf("regions row %d: got %d columns, want %d", y, len(row), s.Width)
		}
		for x := range len(row) {
			id, err := strconv.ParseInt(row[x:x+1], 36, 32)
			if err != nil {
				return fmt.Errorf("regions row %d column %d: %w", y, x, err)
			}
			m.Tiles[m.Index(x, y)].Region = int(id)
		}
	}
	for y, row := range s.Blocked {
		if y >= s.Height {
			return fmt.Errorf("blocked: too many rows")
		}
		for x := 0; x < len(row) && x < s.Width; x++ {
			if row[x] == '#' {
				m.Tiles[m.Index(x, y)].Blocked = true
			}
		}
	}
	return nil
}
