package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/watermelon/decision-engine/internal/domain/service"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

func TestChurnProbability(t *testing.T) {
	tests := []struct {
		name     string
		freq     int
		basket   int64
		days     int
		expected float64
	}{
		{"loyal buyer", 30, 1000, 0, 0},
		{"dormant buyer", 0, 0, 90, 1},
		{"long dormant saturates", 0, 0, 400, 1},
		{"over-frequent buyer does not go negative", 60, 5000, 0, 0},
		{"half recency only", 30, 1000, 45, 0.2},
		{"cafe network", 8, 400, 45, 0.4*(1-8.0/30) + 0.4*0.5 + 0.2*0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.ChurnProbability(tt.freq, decimal.NewFromInt(tt.basket), tt.days)
			assert.InDelta(t, tt.expected, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestChurnProbability_ExtremesClassify(t *testing.T) {
	p := service.ChurnProbability(30, decimal.NewFromInt(1000), 0)
	assert.Equal(t, 0.0, p)
	assert.Equal(t, valueobject.ActionNoAction, valueobject.ChurnActionFromProbability(p))

	p = service.ChurnProbability(0, decimal.Zero, 90)
	assert.Equal(t, 1.0, p)
	assert.Equal(t, valueobject.ChurnTierHighRisk, valueobject.ChurnTierFromProbability(p))
}

func TestChurnProbability_BoundaryAtMediumThreshold(t *testing.T) {
	// 0.4*1 + 0.4*0 + 0.2*0 = 0.4: exactly on the threshold, no campaign.
	p := service.ChurnProbability(0, decimal.NewFromInt(1000), 0)
	assert.InDelta(t, 0.4, p, 1e-12)
	assert.Equal(t, valueobject.ChurnTierNone, valueobject.ChurnTierFromProbability(p))
	assert.Equal(t, valueobject.ActionNoAction, valueobject.ChurnActionFromProbability(p))

	// One more day of recency crosses it.
	p = service.ChurnProbability(0, decimal.NewFromInt(1000), 1)
	assert.Equal(t, valueobject.ChurnTierMediumRisk, valueobject.ChurnTierFromProbability(p))
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, service.DaysSince(now, now))
	assert.Equal(t, 0, service.DaysSince(now.Add(-23*time.Hour), now))
	assert.Equal(t, 1, service.DaysSince(now.Add(-24*time.Hour), now))
	assert.Equal(t, 44, service.DaysSince(now.Add(-45*24*time.Hour+time.Minute), now))
	assert.Equal(t, 0, service.DaysSince(now.Add(72*time.Hour), now), "future orders count as today")
}
