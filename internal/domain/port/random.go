package port

import "time"

// RandomSource supplies the jitter that stands in for model variance.
// Implementations must be safe for concurrent use.
type RandomSource interface {
	// Uniform returns a value in [lo, hi).
	Uniform(lo, hi float64) float64
	// IntRange returns a value in [lo, hi].
	IntRange(lo, hi int) int
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
