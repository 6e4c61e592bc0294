package testutil

import (
	"sync"
	"time"
)

// FixedNow is the reference clock used across tests.
var FixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

// FixedClock always reports the same instant.
type FixedClock struct{ At time.Time }

// Now returns At, or FixedNow when At is zero.
func (c FixedClock) Now() time.Time {
	if c.At.IsZero() {
		return FixedNow
	}
	return c.At
}

// NeutralRandom makes every draw a no-op perturbation: ranges spanning 0
// yield 0, ranges spanning 1 yield 1, anything else yields its lower bound.
type NeutralRandom struct{}

func (NeutralRandom) Uniform(lo, hi float64) float64 {
	switch {
	case lo <= 0 && 0 < hi:
		return 0
	case lo <= 1 && 1 < hi:
		return 1
	default:
		return lo
	}
}

func (NeutralRandom) IntRange(lo, _ int) int { return lo }

// ScriptedRandom replays queued draws in order and falls back to
// NeutralRandom when a queue is exhausted.
type ScriptedRandom struct {
	mu       sync.Mutex
	Uniforms []float64
	Ints     []int
}

func (s *ScriptedRandom) Uniform(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Uniforms) == 0 {
		return NeutralRandom{}.Uniform(lo, hi)
	}
	v := s.Uniforms[0]
	s.Uniforms = s.Uniforms[1:]
	return v
}

func (s *ScriptedRandom) IntRange(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ints) == 0 {
		return NeutralRandom{}.IntRange(lo, hi)
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v
}
