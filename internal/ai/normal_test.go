package ai

import (
	"reflect"
	"testing"

	"github.com/freeeve/kingdom-ai/pkg/world"
)

// recordingExecutor applies actions to the world and remembers them.
type recordingExecutor struct {
	w       *world.World
	actions []world.Action
}

func (r *recordingExecutor) Execute(a world.Action) error {
	r.actions = append(r.actions, a)
	return r.w.Execute(a)
}

func loadWorld(t *testing.T, data string) *world.World {
	t.Helper()
	w, err := world.ParseScenario([]byte(data))
	if err != nil {
		t.Fatalf("ParseScenario: %v", err)
	}
	return w
}

func newTestNormal(w *world.World, seed int64) (*Normal, *recordingExecutor) {
	exec := &recordingExecutor{w: w}
	n := NewNormal(Deps{
		World:      w,
		Executor:   exec,
		Pathfinder: world.NewGridPathfinder(w),
		Rand:       NewRand(seed),
	})
	w.AddObserver(n)
	return n, exec
}

// evaluatedTurn scans the map for the color and rates its regions.
func evaluatedTurn(n *Normal, c world.Color) *kingdomTurn {
	t := n.scan(n.w.Kingdom(c))
	n.evaluateRegionSafety(t)
	return t
}

const turnScenario = `
width: 8
height: 6
regions:
  - "00001111"
  - "00001111"
  - "00001111"
  - "22223333"
  - "22223333"
  - "22223333"
revealed: [blue]
objects:
  - {x: 3, y: 0, object: resource, resource: gold, quantity: 500}
  - {x: 6, y: 1, object: mine, resource: gold}
  - {x: 1, y: 4, object: monster, guard: 20}
  - {x: 6, y: 5, object: treasure_chest, quantity: 1000}
kingdoms:
  - {color: blue, gold: 6000, ai: true}
  - {color: red, gold: 3000}
castles:
  - x: 0
    y: 0
    name: Stonehold
    color: blue
    is_castle: true
    built: [dwelling_1]
    army: {troops: [{monster: peasant, count: 20, strength: 1}]}
  - x: 7
    y: 5
    name: Redwall
    color: red
    army: {troops: [{monster: pikeman, count: 10, strength: 9}]}
heroes:
  - x: 1
    y: 1
    name: Lorelei
    color: blue
    army: {troops: [{monster: pikeman, count: 10, strength: 9}]}
  - x: 5
    y: 4
    name: Arden
    color: red
    army: {troops: [{monster: cavalry, count: 2, strength: 30}]}
`

func TestKingdomTurnIsDeterministic(t *testing.T) {
	play := func() []world.Action {
		w := loadWorld(t, turnScenario)
		n, exec := newTestNormal(w, 42)
		for day := 0; day < 3; day++ {
			n.KingdomTurn(w.Kingdom(world.ColorBlue))
			w.NewDay()
		}
		return exec.actions
	}

	first, second := play(), play()
	if len(first) == 0 {
		t.Fatal("expected the kingdom to act")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("runs diverged:\n%+v\n%+v", first, second)
	}

	moved := false
	for _, a := range first {
		if a.Type == world.ActionMoveHero {
			moved = true
			break
		}
	}
	if !moved {
		t.Errorf("no hero moved in %+v", first)
	}
}

func TestKingdomTurnDropsTurnState(t *testing.T) {
	w := loadWorld(t, turnScenario)
	n, _ := newTestNormal(w, 1)
	n.KingdomTurn(w.Kingdom(world.ColorBlue))
	if n.turn != nil {
		t.Error("turn state should be discarded after KingdomTurn")
	}
	// Hooks outside a turn only reset caches.
	n.RevealFog(w.Map.Tile(0))
	n.HeroesActionComplete(w.Heroes[0])
}

func TestKingdomTurnSkipsLostKingdom(t *testing.T) {
	w := loadWorld(t, turnScenario)
	n, exec := newTestNormal(w, 1)
	k := w.Kingdom(world.ColorBlue)
	k.Lost = true
	n.KingdomTurn(k)
	n.KingdomTurn(nil)
	if len(exec.actions) != 0 {
		t.Errorf("lost kingdom acted: %+v", exec.actions)
	}
}

func TestStrategyForDifficulty(t *testing.T) {
	w := loadWorld(t, turnScenario)
	deps := Deps{World: w, Executor: w, Pathfinder: world.NewGridPathfinder(w), Rand: NewRand(1)}
	tests := []struct {
		difficulty string
		want       string
	}{
		{"", "normal"},
		{"normal", "normal"},
		{"passive", "passive"},
		{"none", "passive"},
		{"nightmare", "normal"},
	}
	for _, tt := range tests {
		if got := StrategyForDifficulty(tt.difficulty, deps).Name(); got != tt.want {
			t.Errorf("StrategyForDifficulty(%q) = %s, want %s", tt.difficulty, got, tt.want)
		}
	}
}

func TestNewNormalRequiresDeps(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewNormal(Deps{})
}

func TestNewNormalUsesDefaultTuning(t *testing.T) {
	w := loadWorld(t, turnScenario)
	n, _ := newTestNormal(w, 1)
	if n.tuning != DefaultTuning() {
		t.Errorf("tuning = %+v", n.tuning)
	}
}
