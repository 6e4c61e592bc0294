package dto

import (
	"time"

	"github.com/watermelon/decision-engine/internal/domain/model"
)

// AnalyzeChurnRequest is the input DTO for the AnalyzeChurn use case.
type AnalyzeChurnRequest struct {
	ID             any `json:"id" yaml:"id"`
	Name           any `json:"name" yaml:"name"`
	LastOrderDate  any `json:"last_order_date" yaml:"last_order_date"`
	OrderFrequency any `json:"order_frequency" yaml:"order_frequency"`
	BasketSize     any `json:"basket_size" yaml:"basket_size"`
}

// ChurnResponse is the output DTO returned after a churn analysis.
// Campaign is empty when no campaign fired.
type ChurnResponse struct {
	LastOrderAt        time.Time `json:"last_order_date"`
	ProcessedAt        time.Time `json:"processed_at"`
	BuyerID            string    `json:"buyer_id"`
	BuyerName          string    `json:"buyer_name"`
	BasketSize         string    `json:"basket_size"`
	ActionTaken        string    `json:"action_taken"`
	RiskTier           string    `json:"risk_tier"`
	Campaign           string    `json:"campaign,omitempty"`
	ChurnProbability   float64   `json:"churn_probability"`
	OrderFrequency     int       `json:"order_frequency"`
	DaysSinceLastOrder int       `json:"days_since_last_order"`
}

// ChurnListResponse is returned by the buyer log query.
type ChurnListResponse struct {
	Buyers []ChurnResponse `json:"buyers"`
	Count  int             `json:"count"`
}

// FromBuyerRecord maps a domain record to the response DTO.
func FromBuyerRecord(r *model.BuyerRecord) ChurnResponse {
	resp := ChurnResponse{
		BuyerID:            r.ID(),
		BuyerName:          r.Name(),
		LastOrderAt:        r.LastOrderAt(),
		OrderFrequency:     r.OrderFrequency(),
		BasketSize:         r.BasketSize().String(),
		DaysSinceLastOrder: r.DaysSinceLastOrder(),
		ChurnProbability:   r.ChurnProbability(),
		ActionTaken:        r.Action().String(),
		RiskTier:           r.Tier().String(),
		ProcessedAt:        r.ProcessedAt(),
	}
	if campaign, ok := r.Campaign(); ok {
		resp.Campaign = campaign.String()
	}
	return resp
}
