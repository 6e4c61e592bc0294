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

// OnboardSupplier is the use case for scoring a supplier invoice and
// deciding whether to onboard the supplier.
type OnboardSupplier struct {
	extractor *service.Extractor
	scorer    *service.CreditScorer
	log       port.SupplierLog
	notifier  port.CRMNotifier
	clock     port.Clock
	telemetry Telemetry
}

// NewOnboardSupplier creates a new OnboardSupplier use case.
func NewOnboardSupplier(
	extractor *service.Extractor,
	scorer *service.CreditScorer,
	log port.SupplierLog,
	notifier port.CRMNotifier,
	clock port.Clock,
	telemetry Telemetry,
) *OnboardSupplier {
	return &OnboardSupplier{
		extractor: extractor,
		scorer:    scorer,
		log:       log,
		notifier:  notifier,
		clock:     clock,
		telemetry: telemetry,
	}
}

// Execute extracts, scores, classifies and records the supplier, then
// notifies the CRM. A CRM failure never changes the returned decision.
func (uc *OnboardSupplier) Execute(ctx context.Context, req dto.OnboardSupplierRequest) (dto.SupplierResponse, error) {
	ctx, span := tracer.Start(ctx, "OnboardSupplier.Execute")
	defer span.End()

	app, err := uc.extractor.Supplier(service.SupplierInput{
		SupplierName: req.SupplierName,
		Amount:       req.Amount,
		Terms:        req.Terms,
	})
	if err != nil {
		failSpan(span, err, "invalid supplier input")
		return dto.SupplierResponse{}, fmt.Errorf("failed to extract supplier: %w", err)
	}

	score := uc.scorer.Score(app)

	record, err := model.NewSupplierRecord(app.Name, app.Amount, app.Terms, score, uc.clock.Now())
	if err != nil {
		failSpan(span, err, "invalid supplier record")
		return dto.SupplierResponse{}, fmt.Errorf("failed to create supplier record: %w", err)
	}

	index, err := uc.log.Append(ctx, record)
	if err != nil {
		failSpan(span, err, "append failed")
		return dto.SupplierResponse{}, fmt.Errorf("failed to append supplier record: %w", err)
	}
	record = record.WithIndex(index)

	span.SetAttributes(
		attribute.Int("supplier.index", index),
		attribute.Float64("supplier.credit_score", score),
		attribute.String("supplier.status", record.Status().String()),
	)
	uc.telemetry.Instruments.decision(ctx, PipelineSupplier, record.Status().String())
	uc.telemetry.Instruments.creditScore(ctx, score)

	uc.telemetry.logger().InfoContext(ctx, "supplier onboarded",
		"supplier_index", index,
		"supplier_name", record.Name(),
		"credit_score", score,
		"risk_level", record.RiskLevel().String(),
		"status", record.Status().String(),
	)

	uc.telemetry.notify(ctx, PipelineSupplier, func(ctx context.Context) error {
		return uc.notifier.NotifyCRMUpdate(ctx, record.Name(), record.Status())
	})

	return dto.FromSupplierRecord(record), nil
}
