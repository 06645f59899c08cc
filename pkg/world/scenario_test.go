package world

import (
	"os"
	"path/filepath"
	"testing"
)

const testScenario = `
width: 4
height: 3
day: 3
regions:
  - "0011"
  - "0011"
  - "2211"
blocked:
  - "...."
  - ".#.."
revealed: [red]
objects:
  - {x: 3, y: 0, object: monster, guard: 40}
  - {x: 0, y: 2, object: mine, resource: gold}
kingdoms:
  - {color: blue, gold: 7500, ai: true}
  - {color: red, gold: 2000}
castles:
  - {x: 0, y: 0, id: 4, name: Stonehold, color: blue, is_castle: true, built: [dwelling_1]}
heroes:
  - x: 2
    y: 2
    name: Lorelei
    color: blue
    role: fighter
    patrol: true
    patrol_radius: 3
    army:
      troops:
        - {monster: pikeman, count: 5, strength: 9}
`

func TestParseScenario(t *testing.T) {
	w, err := ParseScenario([]byte(testScenario))
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	if w.Day != 3 || w.Map.Width != 4 || w.Map.RegionCount() != 3 {
		t.Fatalf("day %d width %d regions %d", w.Day, w.Map.Width, w.Map.RegionCount())
	}
	if !w.Map.Tiles[w.Map.Index(1, 1)].Blocked {
		t.Error("(1,1) should be blocked")
	}
	if w.Map.Tiles[w.Map.Index(3, 0)].Guard != 40 {
		t.Error("monster guard not loaded")
	}
	if w.Map.Tile(11).IsFog(ColorRed) {
		t.Error("red should see the whole map")
	}

	blue := w.Kingdom(ColorBlue)
	if blue == nil || blue.Gold != 7500 || len(blue.Castles) != 1 || len(blue.Heroes) != 1 {
		t.Fatalf("blue kingdom = %+v", blue)
	}
	c := blue.Castles[0]
	if c.ID != 4 || c.Index != 0 || !c.IsCastle || !c.HasBuilding("dwelling_1") {
		t.Errorf("castle = %+v", c)
	}
	h := blue.Heroes[0]
	if h.Role != RoleFighter || h.PatrolCenter != w.Map.Index(2, 2) || h.PatrolRadius != 3 {
		t.Errorf("hero = %+v", h)
	}
	if h.MovePoints != 1500 || h.Level != 1 || h.Army.Strength() != 45 {
		t.Errorf("hero defaults = %+v", h)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no size", "width: 0\nheight: 2\n"},
		{"short region row", "width: 3\nheight: 1\nregions: [\"01\"]\n"},
		{"bad region id", "width: 2\nheight: 1\nregions: [\"0!\"]\n"},
		{"object off map", "width: 2\nheight: 1\nobjects:\n  - {x: 5, y: 0, object: resource}\n"},
		{"bad color", "width: 2\nheight: 1\nkingdoms:\n  - {color: teal}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenario.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadScenario(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
