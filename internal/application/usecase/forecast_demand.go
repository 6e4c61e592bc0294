package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/watermelon/decision-engine/internal/application/dto"
	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/service"
)

// ForecastDemand is the use case for predicting product demand and raising
// low-inventory alerts.
type ForecastDemand struct {
	extractor  *service.Extractor
	forecaster *service.DemandForecaster
	log        port.ForecastLog
	notifier   port.InventoryNotifier
	clock      port.Clock
	telemetry  Telemetry
}

// NewForecastDemand creates a new ForecastDemand use case.
func NewForecastDemand(
	extractor *service.Extractor,
	forecaster *service.DemandForecaster,
	log port.ForecastLog,
	notifier port.InventoryNotifier,
	clock port.Clock,
	telemetry Telemetry,
) *ForecastDemand {
	return &ForecastDemand{
		extractor:  extractor,
		forecaster: forecaster,
		log:        log,
		notifier:   notifier,
		clock:      clock,
		telemetry:  telemetry,
	}
}

// Execute forecasts demand and sends an inventory alert when stock is below
// the alert threshold.
func (uc *ForecastDemand) Execute(ctx context.Context, req dto.ForecastDemandRequest) (dto.ForecastResponse, error) {
	ctx, span := tracer.Start(ctx, "ForecastDemand.Execute")
	defer span.End()

	snap, err := uc.extractor.Product(service.ProductInput{
		ProductID:        req.ProductID,
		HistoricalAvg:    req.HistoricalAvg,
		CurrentInventory: req.CurrentInventory,
	})
	if err != nil {
		failSpan(span, err, "invalid product input")
		return dto.ForecastResponse{}, fmt.Errorf("failed to extract product: %w", err)
	}

	predicted := uc.forecaster.Predict(snap.HistoricalAverage)

	forecast, err := model.NewProductForecast(
		snap.ProductID, snap.HistoricalAverage, predicted, snap.CurrentInventory, uc.clock.Now(),
	)
	if err != nil {
		failSpan(span, err, "invalid forecast")
		return dto.ForecastResponse{}, fmt.Errorf("failed to create forecast: %w", err)
	}

	if _, err := uc.log.Append(ctx, forecast); err != nil {
		failSpan(span, err, "append failed")
		return dto.ForecastResponse{}, fmt.Errorf("failed to append forecast: %w", err)
	}

	span.SetAttributes(
		attribute.String("product.id", forecast.ProductID()),
		attribute.Int("product.predicted_demand", predicted),
		attribute.String("product.inventory_risk", forecast.InventoryRisk().String()),
		attribute.Bool("product.alert_sent", forecast.AlertSent()),
	)
	uc.telemetry.Instruments.decision(ctx, PipelineDemand, forecast.InventoryRisk().String())
	uc.telemetry.Instruments.demand(ctx, predicted)

	uc.telemetry.logger().InfoContext(ctx, "demand forecast",
		"product_id", forecast.ProductID(),
		"predicted_demand", predicted,
		"current_inventory", forecast.CurrentInventory(),
		"inventory_risk", forecast.InventoryRisk().String(),
		"alert_sent", forecast.AlertSent(),
	)

	if forecast.AlertSent() {
		uc.telemetry.notify(ctx, PipelineDemand, func(ctx context.Context) error {
			return uc.notifier.NotifyInventoryAlert(ctx, forecast.ProductID(), forecast.InventoryRisk())
		})
	}

	return dto.FromProductForecast(forecast), nil
}
