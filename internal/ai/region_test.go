package ai

import (
	"testing"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

func TestNewRegionStatsSentinels(t *testing.T) {
	s := newRegionStats()
	if s.Evaluated || s.HighestThreat != -1 || s.AverageMonster != -1 || s.SpellLevel != 2 {
		t.Errorf("newRegionStats() = %+v", s)
	}
}

func TestRegionSafetyNeverRisesWithThreat(t *testing.T) {
	w := DefaultTuning().Region
	prev := 0
	for i, threat := range []float64{0, 10, 50, 100, 250, 1000, 5000, 1e6} {
		s := newRegionStats()
		s.HighestThreat = threat
		s.FriendlyCastles = 1
		s.FriendlyHeroes = 1
		w.evaluate(&s, 100)
		if !s.Evaluated {
			t.Fatal("evaluate should mark the region evaluated")
		}
		if i > 0 && s.SafetyFactor > prev {
			t.Errorf("threat %.0f: safety %d rose above %d", threat, s.SafetyFactor, prev)
		}
		prev = s.SafetyFactor
	}
}

func TestRegionSpellLevel(t *testing.T) {
	w := DefaultTuning().Region
	tests := []struct {
		threat float64
		want   int
	}{
		{0, 2},
		{40, 2},
		{60, 3},
		{150, 4},
		{300, 5},
	}
	for _, tt := range tests {
		s := newRegionStats()
		s.HighestThreat = tt.threat
		w.evaluate(&s, 100)
		if s.SpellLevel != tt.want {
			t.Errorf("threat %.0f: SpellLevel = %d, want %d", tt.threat, s.SpellLevel, tt.want)
		}
	}
}

func TestThreatRatio(t *testing.T) {
	tests := []struct {
		threat, own, want float64
	}{
		{0, 100, 0},
		{-1, 100, 0},
		{50, 100, 0.5},
		{50, 0, 10},
		{5000, 1, 10},
	}
	for _, tt := range tests {
		if got := threatRatio(tt.threat, tt.own, 10); got != tt.want {
			t.Errorf("threatRatio(%v, %v) = %v, want %v", tt.threat, tt.own, got, tt.want)
		}
	}
}

const regionScenario = `
width: 6
height: 2
regions:
  - "001122"
  - "001122"
revealed: [blue]
objects:
  - {x: 0, y: 1, object: monster, guard: 30}
  - {x: 1, y: 1, object: monster, guard: 10}
kingdoms:
  - {color: blue, ai: true}
  - {color: red}
heroes:
  - x: 1
    y: 0
    name: Lorelei
    color: blue
    army: {troops: [{monster: pikeman, count: 10, strength: 10}]}
  - x: 5
    y: 0
    name: Arden
    color: red
    army: {troops: [{monster: cavalry, count: 2, strength: 100}]}
`

func TestEvaluateRegionSafetyProjectsThreat(t *testing.T) {
	w := loadWorld(t, regionScenario)
	n, _ := newTestNormal(w, 1)
	tn := evaluatedTurn(n, world.ColorBlue)

	want := []float64{0, 100, 200}
	for id, threat := range want {
		s := tn.region(id)
		if !s.Evaluated {
			t.Errorf("region %d not evaluated", id)
		}
		if s.HighestThreat != threat {
			t.Errorf("region %d: HighestThreat = %v, want %v", id, s.HighestThreat, threat)
		}
	}
	if s := tn.region(0); s.MonsterCount != 2 || s.AverageMonster != 20 || s.FriendlyHeroes != 1 {
		t.Errorf("region 0 = %+v", s)
	}
	if tn.region(0).SafetyFactor <= tn.region(2).SafetyFactor {
		t.Errorf("home region should be safer than the enemy's: %d vs %d",
			tn.region(0).SafetyFactor, tn.region(2).SafetyFactor)
	}
}

func TestRegionOutOfRangePanics(t *testing.T) {
	w := loadWorld(t, regionScenario)
	n, _ := newTestNormal(w, 1)
	tn := evaluatedTurn(n, world.ColorBlue)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	tn.region(3)
}

func TestRevealFogUpdatesRegion(t *testing.T) {
	w := loadWorld(t, `
width: 6
height: 1
regions: ["000111"]
objects:
  - {x: 5, y: 0, object: campfire, quantity: 300}
kingdoms:
  - {color: blue, ai: true}
heroes:
  - {x: 0, y: 0, name: Lorelei, color: blue, scout_radius: 1, army: {troops: [{monster: pikeman, count: 1, strength: 10}]}}
`)
	n, _ := newTestNormal(w, 1)
	tn := evaluatedTurn(n, world.ColorBlue)
	if got := tn.region(1).FogCount; got != 3 {
		t.Fatalf("FogCount = %d, want 3", got)
	}
	n.turn = tn
	defer func() { n.turn = nil }()

	tile := w.Map.Tile(5)
	w.Map.Reveal(5, 0, world.ColorBlue)
	n.RevealFog(tile)

	s := tn.region(1)
	if s.FogCount != 2 {
		t.Errorf("FogCount = %d, want 2", s.FogCount)
	}
	if len(s.ValidObjects) != 1 || s.ValidObjects[0].Index != 5 {
		t.Errorf("ValidObjects = %+v", s.ValidObjects)
	}
	// Registering the same tile twice keeps one entry.
	n.RevealFog(tile)
	count := 0
	for _, o := range tn.objects {
		if o.Index == 5 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("objects = %+v", tn.objects)
	}
}
