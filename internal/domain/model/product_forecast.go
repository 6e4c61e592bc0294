package model

import (
	"fmt"
	"time"

	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

// ProductForecast is the outcome of one demand forecast. It is immutable.
type ProductForecast struct {
	processedAt       time.Time
	productID         string
	risk              valueobject.InventoryRisk
	historicalAverage float64
	predictedDemand   int
	currentInventory  int
	alertThreshold    int
	alertSent         bool
}

// NewProductForecast classifies inventory cover and evaluates the alert
// threshold. The two are computed independently.
func NewProductForecast(
	productID string,
	historicalAverage float64,
	predictedDemand int,
	currentInventory int,
	processedAt time.Time,
) (*ProductForecast, error) {
	if productID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	if historicalAverage < 0 {
		return nil, fmt.Errorf("historical average must not be negative")
	}
	if predictedDemand < 0 || predictedDemand > valueobject.MaxQuantity {
		return nil, fmt.Errorf("predicted demand must be between 0 and %d, got %d", valueobject.MaxQuantity, predictedDemand)
	}
	if currentInventory < 0 || currentInventory > valueobject.MaxQuantity {
		return nil, fmt.Errorf("current inventory must be between 0 and %d, got %d", valueobject.MaxQuantity, currentInventory)
	}

	return &ProductForecast{
		productID:         productID,
		historicalAverage: historicalAverage,
		predictedDemand:   predictedDemand,
		currentInventory:  currentInventory,
		risk:              valueobject.InventoryRiskFromRatio(currentInventory, predictedDemand),
		alertThreshold:    valueobject.AlertThreshold(predictedDemand),
		alertSent:         valueobject.ShouldAlert(currentInventory, predictedDemand),
		processedAt:       processedAt.UTC(),
	}, nil
}

// ReconstructProductForecast rebuilds a forecast from persisted data (no validation).
func ReconstructProductForecast(
	productID string,
	historicalAverage float64,
	predictedDemand, currentInventory, alertThreshold int,
	risk valueobject.InventoryRisk,
	alertSent bool,
	processedAt time.Time,
) *ProductForecast {
	return &ProductForecast{
		productID:         productID,
		historicalAverage: historicalAverage,
		predictedDemand:   predictedDemand,
		currentInventory:  currentInventory,
		alertThreshold:    alertThreshold,
		risk:              risk,
		alertSent:         alertSent,
		processedAt:       processedAt,
	}
}

// --- Accessors ---

func (p *ProductForecast) ProductID() string                        { return p.productID }
func (p *ProductForecast) HistoricalAverage() float64               { return p.historicalAverage }
func (p *ProductForecast) PredictedDemand() int                     { return p.predictedDemand }
func (p *ProductForecast) CurrentInventory() int                    { return p.currentInventory }
func (p *ProductForecast) InventoryRisk() valueobject.InventoryRisk { return p.risk }
func (p *ProductForecast) AlertThreshold() int                      { return p.alertThreshold }
func (p *ProductForecast) AlertSent() bool                          { return p.alertSent }
func (p *ProductForecast) ProcessedAt() time.Time                   { return p.processedAt }
