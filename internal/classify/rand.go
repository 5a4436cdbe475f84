package classify

import (
	"math/rand/v2"
	"sync"
)

// Rand is the random source consumed by the classifier.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// GlobalRand is the process-wide generator. Safe for concurrent use.
var GlobalRand Rand = globalRand{}

// LockedRand is a seeded generator guarded by a mutex.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedRand returns a reproducible generator for the given seed.
func NewLockedRand(seed uint64) *LockedRand {
	return &LockedRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *LockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *LockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// NewKeyedRand returns an unshared generator derived from seed and key. Runs
// that give every shop its own keyed source draw the same values regardless of
// processing order.
func NewKeyedRand(seed, key uint64) Rand {
	return rand.New(rand.NewPCG(seed, key^0x9e3779b97f4a7c15))
}
