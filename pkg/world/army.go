package world

import "math"

// Troop is a stack of identical creatures.
type Troop struct {
	Monster  string  `yaml:"monster" json:"monster"`
	Count    int     `yaml:"count" json:"count"`
	Strength float64 `yaml:"strength" json:"strength"` // per creature
}

// TotalStrength returns the combat value of the whole stack.
func (t Troop) TotalStrength() float64 {
	return float64(t.Count) * t.Strength
}

// Army is an ordered list of troops.
type Army struct {
	Troops []Troop `yaml:"troops" json:"troops"`
}

// Strength returns the summed strength of all troops.
func (a *Army) Strength() float64 {
	total := 0.0
	for _, t := range a.Troops {
		total += t.TotalStrength()
	}
	return total
}

// IsEmpty reports whether the army has no creatures left.
func (a *Army) IsEmpty() bool {
	for _, t := range a.Troops {
		if t.Count > 0 {
			return false
		}
	}
	return true
}

// Join merges troops into the army, stacking identical monsters.
func (a *Army) Join(troops ...Troop) {
	for _, in := range troops {
		if in.Count <= 0 {
			continue
		}
		merged := false
		for i := range a.Troops {
			if a.Troops[i].Monster == in.Monster {
				a.Troops[i].Count += in.Count
				merged = true
				break
			}
		}
		if !merged {
			a.Troops = append(a.Troops, in)
		}
	}
}

// Scale keeps the given fraction of every stack and drops emptied stacks.
func (a *Army) Scale(fraction float64) {
	kept := a.Troops[:0]
	for _, t := range a.Troops {
		t.Count = int(math.Floor(float64(t.Count) * fraction))
		if t.Count > 0 {
			kept = append(kept, t)
		}
	}
	a.Troops = kept
}

// survivingFraction applies the square law: the stronger side keeps
// sqrt(1 - (weaker/stronger)^2) of its strength.
func survivingFraction(winner, loser float64) float64 {
	if winner <= 0 {
		return 0
	}
	ratio := loser / winner
	if ratio >= 1 {
		return 0
	}
	return math.Sqrt(1 - ratio*ratio)
}
