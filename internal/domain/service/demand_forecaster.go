package service

import (
	"math"

	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

const (
	minSeasonalFactor = 0.8
	maxSeasonalFactor = 1.3
	minTrendFactor    = 0.9
	maxTrendFactor    = 1.2
)

// DemandForecaster scales a historical average by independent seasonal and
// trend draws. Every call draws afresh, so repeated forecasts for the same
// product differ.
type DemandForecaster struct {
	rng port.RandomSource
}

// NewDemandForecaster creates a DemandForecaster drawing factors from rng.
func NewDemandForecaster(rng port.RandomSource) *DemandForecaster {
	return &DemandForecaster{rng: rng}
}

// Predict returns the predicted demand for baseDemand.
func (f *DemandForecaster) Predict(baseDemand float64) int {
	seasonal := f.rng.Uniform(minSeasonalFactor, maxSeasonalFactor)
	trend := f.rng.Uniform(minTrendFactor, maxTrendFactor)
	return PredictDemand(baseDemand, seasonal, trend)
}

// PredictDemand is floor(base * seasonal * trend), clamped to
// [0, valueobject.MaxQuantity].
func PredictDemand(baseDemand, seasonal, trend float64) int {
	v := math.Floor(baseDemand * seasonal * trend)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= valueobject.MaxQuantity:
		return valueobject.MaxQuantity
	}
	return int(v)
}
