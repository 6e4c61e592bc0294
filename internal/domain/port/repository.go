package port

import (
	"context"

	"github.com/watermelon/decision-engine/internal/domain/model"
)

// SupplierLog is the append-only log of onboarded suppliers.
type SupplierLog interface {
	// Append stores the record and returns its 0-based position in the log.
	Append(ctx context.Context, record *model.SupplierRecord) (int, error)

	// List returns up to limit records in insertion order, most recent last.
	List(ctx context.Context, limit int) ([]*model.SupplierRecord, error)
}

// BuyerLog is the append-only log of churn analyses.
type BuyerLog interface {
	Append(ctx context.Context, record *model.BuyerRecord) (int, error)
	List(ctx context.Context, limit int) ([]*model.BuyerRecord, error)
}

// ForecastLog is the append-only log of demand forecasts.
type ForecastLog interface {
	Append(ctx context.Context, forecast *model.ProductForecast) (int, error)
	List(ctx context.Context, limit int) ([]*model.ProductForecast, error)
}
