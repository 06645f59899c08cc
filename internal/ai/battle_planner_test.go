package ai

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/freeeve/kingdom-ai/pkg/battle"
	"github.com/freeeve/kingdom-ai/pkg/world"
)

func stack(uid uint32, c world.Color, cell int) *battle.Unit {
	return &battle.Unit{
		UID: uid, Name: "footman", Color: c, Count: 10, HitPoints: 10,
		Attack: 5, Defense: 5, DamageMin: 2, DamageMax: 4,
		Speed: 4, Initiative: 4, Strength: 5, Cell: cell,
	}
}

func shooter(uid uint32, c world.Color, cell int) *battle.Unit {
	u := stack(uid, c, cell)
	u.Name = "archer"
	u.Archer = true
	u.Shots = 5
	return u
}

func hero(c world.Color, level int, power int, spells ...battle.SpellID) *battle.Commander {
	return &battle.Commander{
		Name: "Mira", Color: c, IsHero: true, Level: level,
		Power: power, SpellPoints: 30, Spells: spells,
	}
}

func testPlanner() *BattlePlanner {
	return NewBattlePlanner(NewRand(1), DefaultTuning().Battle)
}

func TestIsUnitFaster(t *testing.T) {
	tests := []struct {
		name                         string
		speedA, initA, speedB, initB int
		uidA, uidB                   uint32
		want                         bool
	}{
		{"faster", 5, 1, 4, 9, 2, 1, true},
		{"slower", 3, 9, 4, 1, 1, 2, false},
		{"initiative", 4, 6, 4, 5, 2, 1, true},
		{"lower uid", 4, 5, 4, 5, 1, 2, true},
		{"higher uid", 4, 5, 4, 5, 2, 1, false},
	}
	for _, tt := range tests {
		a := stack(tt.uidA, world.ColorBlue, 0)
		a.Speed, a.Initiative = tt.speedA, tt.initA
		b := stack(tt.uidB, world.ColorRed, 1)
		b.Speed, b.Initiative = tt.speedB, tt.initB
		if got := IsUnitFaster(a, b); got != tt.want {
			t.Errorf("%s: IsUnitFaster = %v, want %v", tt.name, got, tt.want)
		}
		if IsUnitFaster(a, b) == IsUnitFaster(b, a) {
			t.Errorf("%s: order is not strict", tt.name)
		}
	}
}

func TestIsHeroWorthSaving(t *testing.T) {
	tests := []struct {
		name string
		cmd  *battle.Commander
		want bool
	}{
		{"none", nil, false},
		{"captain", &battle.Commander{Level: 9}, false},
		{"novice", &battle.Commander{IsHero: true, Level: 2}, false},
		{"veteran", &battle.Commander{IsHero: true, Level: 3}, true},
		{"artifact", &battle.Commander{IsHero: true, Level: 1, Artifacts: []string{"medal"}}, true},
	}
	for _, tt := range tests {
		if got := IsHeroWorthSaving(tt.cmd); got != tt.want {
			t.Errorf("%s: IsHeroWorthSaving = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCheckRetreatCondition(t *testing.T) {
	veteran := &battle.Commander{IsHero: true, Level: 5}
	novice := &battle.Commander{IsHero: true, Level: 1}
	tests := []struct {
		name  string
		state BattleState
		want  bool
	}{
		{"below threshold", BattleState{Commander: veteran, ConsiderRetreat: true, MyArmyStrength: 9, EnemyArmyStrength: 100}, true},
		{"above threshold", BattleState{Commander: veteran, ConsiderRetreat: true, MyArmyStrength: 11, EnemyArmyStrength: 100}, false},
		{"disposable hero", BattleState{Commander: novice, ConsiderRetreat: true, MyArmyStrength: 9, EnemyArmyStrength: 100}, false},
		{"cannot retreat", BattleState{Commander: veteran, MyArmyStrength: 9, EnemyArmyStrength: 100}, false},
		{"own shooters help", BattleState{Commander: veteran, ConsiderRetreat: true, MyArmyStrength: 9, MyShooterStrength: 4, EnemyArmyStrength: 100}, false},
		{"enemy magic hurts", BattleState{Commander: veteran, ConsiderRetreat: true, MyArmyStrength: 11, EnemyArmyStrength: 100, EnemySpellStrength: 20}, true},
		{"faster army holds", BattleState{Commander: veteran, ConsiderRetreat: true, MyArmyStrength: 9, EnemyArmyStrength: 100, MyAverageSpeed: 7, EnemyAverageSpeed: 3}, false},
	}
	p := testPlanner()
	for _, tt := range tests {
		if got := p.CheckRetreatCondition(&tt.state); got != tt.want {
			t.Errorf("%s: CheckRetreatCondition = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAnalyzeBattleState(t *testing.T) {
	archer := shooter(1, world.ColorBlue, battle.CellIndex(0, 4))
	archer.Count = 20
	guard := stack(2, world.ColorBlue, battle.CellIndex(1, 4))
	enemy := stack(3, world.ColorRed, battle.CellIndex(10, 4))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{archer, guard, enemy})
	a.Attacker = hero(world.ColorBlue, 1, 1)

	s := testPlanner().AnalyzeBattleState(a, guard)
	if s.MyArmyStrength != 150 || s.MyShooterStrength != 100 || s.EnemyArmyStrength != 50 {
		t.Errorf("strengths = %+v", s)
	}
	if s.HighestDamageExpected != 30 || s.EnemyColor != world.ColorRed || s.MyAverageSpeed != 4 {
		t.Errorf("state = %+v", s)
	}
	if !s.DefensiveTactics || s.ConsiderRetreat {
		t.Errorf("defensive %v retreat %v", s.DefensiveTactics, s.ConsiderRetreat)
	}
	if s.EnemySpellStrength != 0 {
		t.Errorf("enemy without a spell book has spell strength %v", s.EnemySpellStrength)
	}

	a.Defender = hero(world.ColorRed, 1, 1, battle.SpellMagicArrow)
	if s := testPlanner().AnalyzeBattleState(a, guard); s.EnemySpellStrength <= 0 {
		t.Errorf("enemy caster ignored: %+v", s)
	}
	if s := testPlanner().AnalyzeBattleState(a, enemy); s.EnemySpellStrength != 0 {
		t.Errorf("own spells counted against red: %v", s.EnemySpellStrength)
	}
}

func TestPlanUnitTurnRetreats(t *testing.T) {
	tests := []struct {
		name   string
		spells []battle.SpellID
		want   battle.Actions
	}{
		{"plain", nil, battle.Actions{battle.NewRetreat()}},
		{"parting shot", []battle.SpellID{battle.SpellMagicArrow, battle.SpellHaste},
			battle.Actions{battle.NewCast(battle.SpellMagicArrow, battle.CellIndex(10, 0)), battle.NewRetreat()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			own := stack(1, world.ColorBlue, battle.CellIndex(0, 4))
			own.Count = 1
			units := []*battle.Unit{own}
			for i, y := range []int{0, 4, 8} {
				e := stack(uint32(i+2), world.ColorRed, battle.CellIndex(10, y))
				e.Count = 50
				units = append(units, e)
			}
			a := battle.NewArena(world.ColorBlue, world.ColorRed, units)
			a.Attacker = hero(world.ColorBlue, 5, 1, tt.spells...)

			if got := testPlanner().PlanUnitTurn(a, own); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PlanUnitTurn = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBerserkIgnoresHeuristics(t *testing.T) {
	u := stack(1, world.ColorBlue, battle.CellIndex(2, 2))
	u.Modes |= battle.ModeBerserk
	friend := stack(2, world.ColorBlue, battle.CellIndex(3, 2))
	enemy := stack(3, world.ColorRed, battle.CellIndex(9, 8))
	enemy.Count = 500
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{u, friend, enemy})
	// A hero worth saving facing a huge army would normally retreat.
	a.Attacker = hero(world.ColorBlue, 5, 4, battle.SpellLightningBolt)

	rng := NewRand(1)
	p := NewBattlePlanner(rng, DefaultTuning().Battle)
	want := battle.Actions{battle.NewAttack(1, 2, -1, friend.Cell)}
	if got := p.PlanUnitTurn(a, u); !reflect.DeepEqual(got, want) {
		t.Errorf("PlanUnitTurn = %+v, want %+v", got, want)
	}
	if rng.Draws() != 0 {
		t.Errorf("a single nearest target should not draw, drew %d", rng.Draws())
	}
}

func TestBerserkTieUsesRand(t *testing.T) {
	u := stack(1, world.ColorBlue, battle.CellIndex(2, 2))
	u.Modes |= battle.ModeBerserk
	left := stack(2, world.ColorBlue, battle.CellIndex(1, 2))
	right := stack(3, world.ColorRed, battle.CellIndex(3, 2))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{u, left, right})

	rng := NewRand(3)
	got := NewBattlePlanner(rng, DefaultTuning().Battle).PlanUnitTurn(a, u)
	if len(got) != 1 || got[0].Type != battle.ActionAttack || (got[0].Target != 2 && got[0].Target != 3) {
		t.Fatalf("PlanUnitTurn = %+v", got)
	}
	if rng.Draws() != 1 {
		t.Errorf("Draws = %d, want 1", rng.Draws())
	}
}

func TestPlanUnitTurnSkipsImmovable(t *testing.T) {
	u := stack(1, world.ColorBlue, 0)
	u.Modes |= battle.ModeParalyzed
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{u, stack(2, world.ColorRed, 10)})
	p := testPlanner()
	if got := p.PlanUnitTurn(a, u); !reflect.DeepEqual(got, battle.Actions{battle.NewSkip(1)}) {
		t.Errorf("PlanUnitTurn = %+v", got)
	}
	if got := p.PlanUnitTurn(a, nil); got != nil {
		t.Errorf("nil unit planned %+v", got)
	}
}

func TestArcherShootsMostValuable(t *testing.T) {
	archer := shooter(1, world.ColorBlue, battle.CellIndex(0, 4))
	footman := stack(2, world.ColorRed, battle.CellIndex(10, 0))
	enemyArcher := shooter(3, world.ColorRed, battle.CellIndex(10, 8))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{archer, footman, enemyArcher})

	want := battle.Actions{battle.NewAttack(1, 3, -1, enemyArcher.Cell)}
	if got := testPlanner().PlanUnitTurn(a, archer); !reflect.DeepEqual(got, want) {
		t.Errorf("PlanUnitTurn = %+v, want %+v", got, want)
	}
}

func TestBlockedArcher(t *testing.T) {
	tests := []struct {
		name  string
		speed int
		count int
		kite  bool
	}{
		{"faster slips away", 6, 10, true},
		{"slower fights back", 3, 10, false},
		{"doomed fights back", 6, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archer := shooter(1, world.ColorBlue, battle.CellIndex(5, 4))
			archer.Speed = tt.speed
			archer.Count = tt.count
			enemy := stack(2, world.ColorRed, battle.CellIndex(6, 4))
			a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{archer, enemy})

			got := testPlanner().PlanUnitTurn(a, archer)
			if len(got) != 1 {
				t.Fatalf("PlanUnitTurn = %+v", got)
			}
			if !tt.kite {
				want := battle.NewAttack(1, 2, -1, enemy.Cell)
				if got[0] != want {
					t.Errorf("action = %+v, want %+v", got[0], want)
				}
				return
			}
			if got[0].Type != battle.ActionMove || battle.IsNeighbour(got[0].Cell, enemy.Cell) {
				t.Errorf("action = %+v, want a move away from the enemy", got[0])
			}
			if err := a.Apply(archer, got); err != nil {
				t.Errorf("Apply: %v", err)
			}
		})
	}
}

func TestMeleeOffenseAttacksReachableEnemy(t *testing.T) {
	u := stack(1, world.ColorBlue, battle.CellIndex(4, 4))
	near := stack(2, world.ColorRed, battle.CellIndex(6, 4))
	far := stack(3, world.ColorRed, battle.CellIndex(10, 8))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{u, near, far})

	got := testPlanner().PlanUnitTurn(a, u)
	if len(got) != 1 || got[0].Type != battle.ActionAttack || got[0].Target != 2 {
		t.Fatalf("PlanUnitTurn = %+v", got)
	}
	if !battle.IsNeighbour(got[0].Cell, near.Cell) || !a.CanReach(u, got[0].Cell) {
		t.Errorf("attack from %d", got[0].Cell)
	}
	if err := a.Apply(u, got); err != nil {
		t.Errorf("Apply: %v", err)
	}
}

func TestMeleeOffenseApproaches(t *testing.T) {
	u := stack(1, world.ColorBlue, battle.CellIndex(0, 4))
	far := stack(2, world.ColorRed, battle.CellIndex(10, 4))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{u, far})

	got := testPlanner().PlanUnitTurn(a, u)
	if len(got) != 1 || got[0].Type != battle.ActionMove {
		t.Fatalf("PlanUnitTurn = %+v", got)
	}
	if battle.HexDistance(got[0].Cell, far.Cell) >= battle.HexDistance(u.Cell, far.Cell) {
		t.Errorf("move to %d does not close in", got[0].Cell)
	}
}

func TestMeleeDefenseGuardsShooters(t *testing.T) {
	archer := shooter(1, world.ColorBlue, battle.CellIndex(0, 4))
	archer.Count = 20
	guard := stack(2, world.ColorBlue, battle.CellIndex(3, 0))
	enemy := stack(3, world.ColorRed, battle.CellIndex(10, 8))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{archer, guard, enemy})

	got := testPlanner().PlanUnitTurn(a, guard)
	if len(got) != 1 || got[0].Type != battle.ActionMove {
		t.Fatalf("PlanUnitTurn = %+v", got)
	}
	if battle.HexDistance(got[0].Cell, archer.Cell) >= battle.HexDistance(guard.Cell, archer.Cell) {
		t.Errorf("guard moved to %d, away from the archer", got[0].Cell)
	}
}

func TestSpellOnlyWhenBetterThanAttack(t *testing.T) {
	tests := []struct {
		name  string
		spell battle.SpellID
		power int
		cast  bool
	}{
		{"weak spell", battle.SpellMagicArrow, 1, false},
		{"strong spell", battle.SpellLightningBolt, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := stack(1, world.ColorBlue, battle.CellIndex(4, 4))
			enemy := stack(2, world.ColorRed, battle.CellIndex(5, 4))
			a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{u, enemy})
			a.Attacker = hero(world.ColorBlue, 1, tt.power, tt.spell)

			want := battle.Actions{battle.NewAttack(1, 2, -1, enemy.Cell)}
			if tt.cast {
				want = battle.Actions{battle.NewCast(tt.spell, enemy.Cell)}
			}
			if got := testPlanner().PlanUnitTurn(a, u); !reflect.DeepEqual(got, want) {
				t.Errorf("PlanUnitTurn = %+v, want %+v", got, want)
			}
		})
	}
}

func TestSpellsSkippedWhenOverpowered(t *testing.T) {
	u := stack(1, world.ColorBlue, battle.CellIndex(0, 4))
	u.Count = 1000
	enemy := stack(2, world.ColorRed, battle.CellIndex(10, 4))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{u, enemy})
	a.Attacker = hero(world.ColorBlue, 1, 4, battle.SpellLightningBolt)

	got := testPlanner().PlanUnitTurn(a, u)
	if len(got) != 1 || got[0].Type == battle.ActionCast {
		t.Errorf("PlanUnitTurn = %+v, want no cast", got)
	}
}

func TestMassEffectBeatsSingleTarget(t *testing.T) {
	u := stack(1, world.ColorBlue, battle.CellIndex(0, 4))
	other := stack(2, world.ColorBlue, battle.CellIndex(0, 6))
	enemy := stack(3, world.ColorRed, battle.CellIndex(10, 4))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{u, other, enemy})

	tests := []struct {
		spells []battle.SpellID
		want   battle.Action
	}{
		{[]battle.SpellID{battle.SpellHaste}, battle.NewCast(battle.SpellHaste, u.Cell)},
		{[]battle.SpellID{battle.SpellHaste, battle.SpellMassHaste}, battle.NewCast(battle.SpellMassHaste, -1)},
	}
	for _, tt := range tests {
		a.Attacker = hero(world.ColorBlue, 1, 3, tt.spells...)
		got := testPlanner().PlanUnitTurn(a, u)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("spells %v: PlanUnitTurn = %+v, want %+v", tt.spells, got, tt.want)
		}
	}
}

func TestSpellDamageValueCountsFriendlyFire(t *testing.T) {
	own := stack(1, world.ColorBlue, battle.CellIndex(0, 4))
	enemy := stack(2, world.ColorRed, battle.CellIndex(10, 4))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{own, enemy})
	armageddon, _ := battle.SpellByID(battle.SpellArmageddon)

	if o := spellDamageValue(a, armageddon, world.ColorBlue, 1, false); o.Value != 0 || o.Cell != -1 {
		t.Errorf("outcome = %+v, want value 0 at cell -1", o)
	}
	if o := spellDamageValue(a, armageddon, world.ColorBlue, 1, true); o.Value != 25 {
		t.Errorf("ignoring own losses: outcome = %+v, want 25", o)
	}
}

func TestSpellResurrectValue(t *testing.T) {
	wounded := stack(1, world.ColorBlue, battle.CellIndex(2, 2))
	wounded.Count = 4
	wounded.InitialCount = 10
	fallen := stack(2, world.ColorBlue, battle.CellIndex(2, 6))
	fallen.Count = 0
	fallen.InitialCount = 2
	enemy := stack(3, world.ColorRed, battle.CellIndex(10, 4))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{wounded, fallen, enemy})

	tests := []struct {
		spell battle.SpellID
		want  SpellcastOutcome
	}{
		{battle.SpellResurrect, SpellcastOutcome{Cell: wounded.Cell, Value: 20}},
		{battle.SpellResurrectTrue, SpellcastOutcome{Cell: wounded.Cell, Value: 25}},
		{battle.SpellAnimateDead, SpellcastOutcome{Cell: -1}},
	}
	for _, tt := range tests {
		s, _ := battle.SpellByID(tt.spell)
		if got := spellResurrectValue(a, s, world.ColorBlue, 1); got != tt.want {
			t.Errorf("%s: outcome = %+v, want %+v", tt.spell, got, tt.want)
		}
	}
}

func TestSpellRatios(t *testing.T) {
	u := stack(1, world.ColorRed, 0)
	if got := getSpellSlowRatio(u); got != 0.2 {
		t.Errorf("slow ratio = %v, want 0.2", got)
	}
	u.Modes |= battle.ModeSlowed
	if got := getSpellSlowRatio(u); got != 0 {
		t.Errorf("slowed unit ratio = %v, want 0", got)
	}

	haste, _ := battle.SpellByID(battle.SpellHaste)
	archer := shooter(2, world.ColorBlue, 1)
	if got := getSpellHasteRatio(archer, haste); got != 0.1 {
		t.Errorf("archer haste ratio = %v, want 0.1", got)
	}

	ray, _ := battle.SpellByID(battle.SpellDisruptingRay)
	weak := stack(3, world.ColorRed, 2)
	weak.Defense = 1
	if got := getSpellDisruptingRayRatio(weak, ray); got != 0.05 {
		t.Errorf("disrupting ray ratio = %v, want 0.05", got)
	}

	fresh := stack(4, world.ColorRed, 3)
	if got := spellDurationMultiplier(fresh, 3); got != 1 {
		t.Errorf("duration multiplier = %v, want 1", got)
	}
	fresh.Modes |= battle.ModeMoved
	if got := spellDurationMultiplier(fresh, 1); got != 0 {
		t.Errorf("moved unit with one round = %v, want 0", got)
	}
}

const battleScenario = `
attacker_color: blue
defender_color: red
attacker: {name: Mira, is_hero: true, level: 4, power: 2, spell_points: 40, spells: [magic_arrow, slow, haste, berserker, bless]}
defender: {name: Captain, power: 1, spell_points: 10, spells: [bless, magic_arrow]}
units:
  - {uid: 1, name: pikeman, color: blue, count: 12, hit_points: 10, attack: 5, defense: 6, damage_min: 2, damage_max: 4, speed: 4, initiative: 4, strength: 5, cell: 11}
  - {uid: 2, name: archer, color: blue, count: 10, hit_points: 8, attack: 6, defense: 3, damage_min: 2, damage_max: 3, speed: 3, initiative: 5, archer: true, shots: 8, strength: 6, cell: 44}
  - {uid: 3, name: griffin, color: blue, count: 4, hit_points: 25, attack: 6, defense: 6, damage_min: 3, damage_max: 5, speed: 6, initiative: 6, flying: true, strength: 15, cell: 77}
  - {uid: 4, name: wolf, color: red, count: 14, hit_points: 10, attack: 6, defense: 4, damage_min: 2, damage_max: 5, speed: 5, initiative: 5, strength: 6, cell: 21}
  - {uid: 5, name: orc, color: red, count: 9, hit_points: 12, attack: 4, defense: 4, damage_min: 2, damage_max: 4, speed: 3, initiative: 3, archer: true, shots: 6, strength: 6, cell: 54}
  - {uid: 6, name: ogre, color: red, count: 3, hit_points: 40, attack: 9, defense: 5, damage_min: 5, damage_max: 8, speed: 3, initiative: 2, strength: 20, cell: 87}
`

func TestBattleTurnIsDeterministic(t *testing.T) {
	play := func() []string {
		a, err := battle.ParseArena([]byte(battleScenario))
		if err != nil {
			t.Fatalf("ParseArena: %v", err)
		}
		n, _ := newTestNormal(loadWorld(t, turnScenario), 7)
		var out []string
		for rounds := 0; rounds < 30 && !a.IsOver(); {
			u := a.NextUnit()
			if u == nil {
				a.NewRound()
				rounds++
				continue
			}
			actions := n.BattleTurn(a, u)
			err := a.Apply(u, actions)
			out = append(out, fmt.Sprintf("round %d unit %d: %+v err=%v", a.Round, u.UID, actions, err))
		}
		return out
	}

	first, second := play(), play()
	if len(first) == 0 {
		t.Fatal("no unit acted")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("battles diverged:\n%v\n%v", first, second)
	}
}

func TestBattleTurnWithoutLiveUnit(t *testing.T) {
	normal, _ := newTestNormal(loadWorld(t, turnScenario), 1)
	for _, s := range []Strategy{normal, Passive{}} {
		t.Run(s.Name(), func(t *testing.T) {
			dead := stack(1, world.ColorBlue, battle.CellIndex(0, 4))
			dead.Count = 0
			a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{
				dead, stack(2, world.ColorRed, battle.CellIndex(10, 4)),
			})
			if got := s.BattleTurn(a, nil); got != nil {
				t.Errorf("nil unit: %+v", got)
			}
			if got := s.BattleTurn(a, dead); got != nil {
				t.Errorf("dead unit: %+v", got)
			}
		})
	}
	alive := stack(3, world.ColorBlue, battle.CellIndex(0, 0))
	a := battle.NewArena(world.ColorBlue, world.ColorRed, []*battle.Unit{alive})
	if got := (Passive{}).BattleTurn(a, alive); !reflect.DeepEqual(got, battle.Actions{battle.NewSkip(3)}) {
		t.Errorf("passive live unit: %+v", got)
	}
}
