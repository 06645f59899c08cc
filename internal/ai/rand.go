package ai

import "math/rand"

// Rand is the deterministic random source shared by every decision path of
// one game session. Callers draw from it in a fixed order so that a replay
// from the same seed makes the same decisions.
type Rand struct {
	src   *rand.Rand
	draws uint64
}

// NewRand returns a source seeded with seed.
func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// Intn returns a value in [0, n). It returns 0 without drawing when n < 2.
func (r *Rand) Intn(n int) int {
	if n < 2 {
		return 0
	}
	r.draws++
	return r.src.Intn(n)
}

// Draws returns how many values have been drawn so far.
func (r *Rand) Draws() uint64 {
	return r.draws
}
