package core

import "math/rand/v2"

// Source is the random source consumed by the simulation. Grids, crowds and
// front-ends take one as a parameter so ticks can be replayed from a seed.
type Source interface {
	// Bool reports true with probability p.
	Bool(p float64) bool
	// Range returns a value in [lo, hi).
	Range(lo, hi float64) float64
	// IntN returns a value in [0, n). It returns 0 when n <= 0.
	IntN(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

var _ Source = (*RNG)(nil)

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Seed rewinds the generator to the start of the stream for seed.
func (r *RNG) Seed(seed int64) {
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Bool returns true with probability p. Values outside [0, 1] saturate.
func (r *RNG) Bool(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// Range returns a uniformly distributed value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Float64()*(hi-lo)
}

// IntN returns a random int in [0, n).
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Float64 returns a random value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
