package dto

import (
	"time"

	"github.com/watermelon/decision-engine/internal/domain/model"
)

// ForecastDemandRequest is the input DTO for the ForecastDemand use case.
type ForecastDemandRequest struct {
	ProductID        any `json:"product_id" yaml:"product_id"`
	HistoricalAvg    any `json:"historical_avg" yaml:"historical_avg"`
	CurrentInventory any `json:"current_inventory" yaml:"current_inventory"`
}

// ForecastResponse is the output DTO returned after a demand forecast.
type ForecastResponse struct {
	ProcessedAt       time.Time `json:"processed_at"`
	ProductID         string    `json:"product_id"`
	InventoryRisk     string    `json:"inventory_risk"`
	HistoricalAverage float64   `json:"historical_avg"`
	PredictedDemand   int       `json:"predicted_demand"`
	CurrentInventory  int       `json:"current_inventory"`
	AlertThreshold    int       `json:"alert_threshold"`
	AlertSent         bool      `json:"alert_sent"`
}

// ForecastListResponse is returned by the forecast log query.
type ForecastListResponse struct {
	Products []ForecastResponse `json:"products"`
	Count    int                `json:"count"`
}

// FromProductForecast maps a domain forecast to the response DTO.
func FromProductForecast(f *model.ProductForecast) ForecastResponse {
	return ForecastResponse{
		ProductID:         f.ProductID(),
		HistoricalAverage: f.HistoricalAverage(),
		PredictedDemand:   f.PredictedDemand(),
		CurrentInventory:  f.CurrentInventory(),
		InventoryRisk:     f.InventoryRisk().String(),
		AlertThreshold:    f.AlertThreshold(),
		AlertSent:         f.AlertSent(),
		ProcessedAt:       f.ProcessedAt(),
	}
}

// ListRequest bounds a log query. A non-positive limit means the default.
type ListRequest struct {
	Limit int `json:"limit"`
}
