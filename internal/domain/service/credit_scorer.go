package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

const (
	baseCreditScore       = 650.0
	amountFactorDivisor   = 10000.0
	maxAmountMultiplier   = 2.0
	amountFactorWeight    = 50.0
	net30Bonus            = 30.0
	creditJitterAmplitude = 50.0
)

// CreditScorer estimates a supplier credit score from invoice size and terms
// plus a uniform jitter in [-50, 50). The result is capped at 850 and has
// no lower clamp: for a positive amount it cannot fall below 600.
type CreditScorer struct {
	rng port.RandomSource
}

// NewCreditScorer creates a CreditScorer drawing jitter from rng.
func NewCreditScorer(rng port.RandomSource) *CreditScorer {
	return &CreditScorer{rng: rng}
}

// Score computes the credit score for app.
func (s *CreditScorer) Score(app SupplierApplication) float64 {
	jitter := s.rng.Uniform(-creditJitterAmplitude, creditJitterAmplitude)
	return CreditScore(app.Amount, app.Terms, jitter)
}

// CreditScore is the deterministic formula with an explicit jitter term.
func CreditScore(amount decimal.Decimal, terms valueobject.ContractTerms, jitter float64) float64 {
	amountFactor := math.Min(amount.InexactFloat64()/amountFactorDivisor, maxAmountMultiplier) * amountFactorWeight

	termsFactor := 0.0
	if terms.IsNet30() {
		termsFactor = net30Bonus
	}

	return math.Min(baseCreditScore+amountFactor+termsFactor+jitter, model.MaxCreditScore)
}
