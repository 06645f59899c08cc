package world

import (
	"slices"
	"testing"
)

func TestMapIndexAndPoint(t *testing.T) {
	m := NewMap(5, 4)
	if got := m.Index(4, 3); got != 19 {
		t.Errorf("Index(4,3) = %d, want 19", got)
	}
	if got := m.Index(5, 0); got != -1 {
		t.Errorf("Index(5,0) = %d, want -1", got)
	}
	x, y := m.Point(13)
	if x != 3 || y != 2 {
		t.Errorf("Point(13) = (%d,%d), want (3,2)", x, y)
	}
	if m.Tile(20) != nil {
		t.Error("Tile(20) should be nil on a 5x4 map")
	}
}

func TestApproxDistance(t *testing.T) {
	m := NewMap(5, 4)
	tests := []struct {
		a, b, want int
	}{
		{0, 0, 0},
		{0, 19, 4},
		{0, 6, 1},
		{2, 17, 3},
	}
	for _, tt := range tests {
		if got := m.ApproxDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("ApproxDistance(%d,%d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAroundCorner(t *testing.T) {
	m := NewMap(5, 4)
	got := m.Around(0)
	if !slices.Equal(got, []int{1, 5, 6}) {
		t.Errorf("Around(0) = %v, want [1 5 6]", got)
	}
	if n := len(m.Around(6)); n != 8 {
		t.Errorf("Around(6) has %d tiles, want 8", n)
	}
}

func TestRevealReportsOnlyNewTiles(t *testing.T) {
	m := NewMap(5, 5)
	first := m.Reveal(12, 1, ColorBlue)
	if len(first) != 9 {
		t.Fatalf("first reveal: got %d tiles, want 9", len(first))
	}
	if again := m.Reveal(12, 1, ColorBlue); len(again) != 0 {
		t.Errorf("second reveal: got %d tiles, want 0", len(again))
	}
	if other := m.Reveal(12, 1, ColorRed); len(other) != 9 {
		t.Errorf("red reveal: got %d tiles, want 9", len(other))
	}
	if m.Tile(12).IsFog(ColorBlue) {
		t.Error("center tile should be explored by blue")
	}
	if !m.Tile(0).IsFog(ColorBlue) {
		t.Error("corner tile should still be fog for blue")
	}
}

func TestRegionNeighbours(t *testing.T) {
	m := NewMap(4, 1)
	m.Tiles[2].Region = 1
	m.Tiles[3].Region = 2
	m.RebuildRegions()

	if m.RegionCount() != 3 {
		t.Fatalf("RegionCount = %d, want 3", m.RegionCount())
	}
	want := map[int][]int{0: {1}, 1: {0, 2}, 2: {1}}
	for r, exp := range want {
		if got := m.RegionNeighbours(r); !slices.Equal(got, exp) {
			t.Errorf("RegionNeighbours(%d) = %v, want %v", r, got, exp)
		}
	}
	if m.RegionNeighbours(7) != nil {
		t.Error("unknown region should have no neighbours")
	}
}

func TestArmyJoinAndScale(t *testing.T) {
	var a Army
	a.Join(Troop{Monster: "archer", Count: 4, Strength: 5}, Troop{Monster: "peasant", Count: 10, Strength: 1})
	a.Join(Troop{Monster: "archer", Count: 6, Strength: 5}, Troop{Monster: "ghost", Count: 0, Strength: 9})

	if len(a.Troops) != 2 {
		t.Fatalf("got %d troops, want 2", len(a.Troops))
	}
	if a.Strength() != 60 {
		t.Errorf("Strength = %v, want 60", a.Strength())
	}
	a.Scale(0.5)
	if a.Troops[0].Count != 5 || a.Troops[1].Count != 5 {
		t.Errorf("after scale: %+v", a.Troops)
	}
	a.Scale(0.1)
	if !a.IsEmpty() {
		t.Errorf("army should be empty, got %+v", a.Troops)
	}
}

func TestSurvivingFraction(t *testing.T) {
	if got := survivingFraction(100, 60); got < 0.799 || got > 0.801 {
		t.Errorf("survivingFraction(100,60) = %v, want 0.8", got)
	}
	if got := survivingFraction(50, 50); got != 0 {
		t.Errorf("even fight should leave nothing, got %v", got)
	}
}
