package usecase

import (
	"context"
	"fmt"

	"github.com/watermelon/decision-engine/internal/application/dto"
	"github.com/watermelon/decision-engine/internal/domain/port"
)

// Limits applied to log queries.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// ListProcessed is the query use case over the three decision logs.
type ListProcessed struct {
	suppliers port.SupplierLog
	buyers    port.BuyerLog
	forecasts port.ForecastLog
}

// NewListProcessed creates a new ListProcessed use case.
func NewListProcessed(suppliers port.SupplierLog, buyers port.BuyerLog, forecasts port.ForecastLog) *ListProcessed {
	return &ListProcessed{suppliers: suppliers, buyers: buyers, forecasts: forecasts}
}

// Suppliers returns the most recent onboarding decisions, oldest first.
func (uc *ListProcessed) Suppliers(ctx context.Context, req dto.ListRequest) (dto.SupplierListResponse, error) {
	records, err := uc.suppliers.List(ctx, clampLimit(req.Limit))
	if err != nil {
		return dto.SupplierListResponse{}, fmt.Errorf("failed to list suppliers: %w", err)
	}

	resp := dto.SupplierListResponse{Suppliers: make([]dto.SupplierResponse, 0, len(records))}
	for _, r := range records {
		resp.Suppliers = append(resp.Suppliers, dto.FromSupplierRecord(r))
	}
	resp.Count = len(resp.Suppliers)
	return resp, nil
}

// Buyers returns the most recent churn analyses, oldest first.
func (uc *ListProcessed) Buyers(ctx context.Context, req dto.ListRequest) (dto.ChurnListResponse, error) {
	records, err := uc.buyers.List(ctx, clampLimit(req.Limit))
	if err != nil {
		return dto.ChurnListResponse{}, fmt.Errorf("failed to list buyers: %w", err)
	}

	resp := dto.ChurnListResponse{Buyers: make([]dto.ChurnResponse, 0, len(records))}
	for _, r := range records {
		resp.Buyers = append(resp.Buyers, dto.FromBuyerRecord(r))
	}
	resp.Count = len(resp.Buyers)
	return resp, nil
}

// Products returns the most recent demand forecasts, oldest first.
func (uc *ListProcessed) Products(ctx context.Context, req dto.ListRequest) (dto.ForecastListResponse, error) {
	forecasts, err := uc.forecasts.List(ctx, clampLimit(req.Limit))
	if err != nil {
		return dto.ForecastListResponse{}, fmt.Errorf("failed to list forecasts: %w", err)
	}

	resp := dto.ForecastListResponse{Products: make([]dto.ForecastResponse, 0, len(forecasts))}
	for _, f := range forecasts {
		resp.Products = append(resp.Products, dto.FromProductForecast(f))
	}
	resp.Count = len(resp.Products)
	return resp, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
