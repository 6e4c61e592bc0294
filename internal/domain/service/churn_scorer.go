package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	fullFrequency     = 30.0   // orders per month with no frequency risk
	recencyHorizonDay = 90.0   // days after which recency risk saturates
	fullBasket        = 1000.0 // basket value with no basket risk

	frequencyWeight = 0.4
	recencyWeight   = 0.4
	basketWeight    = 0.2
)

// ChurnProbability combines order frequency, recency and basket size into a
// probability in [0, 1]. It is deterministic.
func ChurnProbability(orderFrequency int, basketSize decimal.Decimal, daysSinceLastOrder int) float64 {
	frequencyScore := math.Max(0, 1-float64(orderFrequency)/fullFrequency)
	recencyScore := math.Min(float64(max(daysSinceLastOrder, 0))/recencyHorizonDay, 1)
	basketScore := math.Max(0, 1-basketSize.InexactFloat64()/fullBasket)

	p := frequencyWeight*frequencyScore + recencyWeight*recencyScore + basketWeight*basketScore
	return math.Max(0, math.Min(p, 1))
}

// DaysSince returns whole days elapsed from then to now, rounded down.
// A timestamp in the future counts as zero days.
func DaysSince(then, now time.Time) int {
	d := now.Sub(then)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
