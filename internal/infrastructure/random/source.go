// Package random provides the jitter source behind the scoring services.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is a seedable PCG generator safe for concurrent use.
type Source struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed uint64
}

// NewSource returns a Source seeded with seed. A zero seed is replaced by
// one derived from the current time, which Seed reports.
func NewSource(seed uint64) *Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Source{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Uniform returns a value in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()
	return lo + f*(hi-lo)
}

// IntRange returns a value in [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	n := s.rng.IntN(hi - lo + 1)
	s.mu.Unlock()
	return lo + n
}
