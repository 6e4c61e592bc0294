package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

// BuyerRecord is the outcome of one churn analysis. It is immutable.
type BuyerRecord struct {
	lastOrderAt        time.Time
	processedAt        time.Time
	id                 string
	name               string
	basketSize         decimal.Decimal
	tier               valueobject.ChurnTier
	action             valueobject.ChurnAction
	churnProbability   float64
	orderFrequency     int
	daysSinceLastOrder int
}

// NewBuyerRecord derives the campaign tier and reported action from
// churnProbability.
func NewBuyerRecord(
	id, name string,
	lastOrderAt time.Time,
	orderFrequency int,
	basketSize decimal.Decimal,
	daysSinceLastOrder int,
	churnProbability float64,
	processedAt time.Time,
) (*BuyerRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("buyer id is required")
	}
	if orderFrequency < 0 || orderFrequency > valueobject.MaxQuantity {
		return nil, fmt.Errorf("order frequency must be between 0 and %d, got %d", valueobject.MaxQuantity, orderFrequency)
	}
	if basketSize.IsNegative() {
		return nil, fmt.Errorf("basket size must not be negative")
	}
	if daysSinceLastOrder < 0 {
		return nil, fmt.Errorf("days since last order must not be negative")
	}
	if churnProbability < 0 || churnProbability > 1 {
		return nil, fmt.Errorf("churn probability must be between 0 and 1, got %v", churnProbability)
	}
	if name == "" {
		name = id
	}

	return &BuyerRecord{
		id:                 id,
		name:               name,
		lastOrderAt:        lastOrderAt.UTC(),
		orderFrequency:     orderFrequency,
		basketSize:         basketSize,
		daysSinceLastOrder: daysSinceLastOrder,
		churnProbability:   churnProbability,
		tier:               valueobject.ChurnTierFromProbability(churnProbability),
		action:             valueobject.ChurnActionFromProbability(churnProbability),
		processedAt:        processedAt.UTC(),
	}, nil
}

// ReconstructBuyerRecord rebuilds a record from persisted data (no validation).
func ReconstructBuyerRecord(
	id, name string,
	lastOrderAt time.Time,
	orderFrequency int,
	basketSize decimal.Decimal,
	daysSinceLastOrder int,
	churnProbability float64,
	tier valueobject.ChurnTier,
	action valueobject.ChurnAction,
	processedAt time.Time,
) *BuyerRecord {
	return &BuyerRecord{
		id:                 id,
		name:               name,
		lastOrderAt:        lastOrderAt,
		orderFrequency:     orderFrequency,
		basketSize:         basketSize,
		daysSinceLastOrder: daysSinceLastOrder,
		churnProbability:   churnProbability,
		tier:               tier,
		action:             action,
		processedAt:        processedAt,
	}
}

// Campaign returns the campaign to fire, if any.
func (b *BuyerRecord) Campaign() (valueobject.CampaignKind, bool) {
	return b.tier.Campaign()
}

// --- Accessors ---

func (b *BuyerRecord) ID() string                      { return b.id }
func (b *BuyerRecord) Name() string                    { return b.name }
func (b *BuyerRecord) LastOrderAt() time.Time          { return b.lastOrderAt }
func (b *BuyerRecord) OrderFrequency() int             { return b.orderFrequency }
func (b *BuyerRecord) BasketSize() decimal.Decimal     { return b.basketSize }
func (b *BuyerRecord) DaysSinceLastOrder() int         { return b.daysSinceLastOrder }
func (b *BuyerRecord) ChurnProbability() float64       { return b.churnProbability }
func (b *BuyerRecord) Tier() valueobject.ChurnTier     { return b.tier }
func (b *BuyerRecord) Action() valueobject.ChurnAction { return b.action }
func (b *BuyerRecord) ProcessedAt() time.Time          { return b.processedAt }
