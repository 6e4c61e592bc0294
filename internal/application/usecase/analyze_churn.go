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

// AnalyzeChurn is the use case for scoring a buyer's churn risk and firing
// the matching retention campaign.
type AnalyzeChurn struct {
	extractor *service.Extractor
	log       port.BuyerLog
	notifier  port.MarketingNotifier
	clock     port.Clock
	telemetry Telemetry
}

// NewAnalyzeChurn creates a new AnalyzeChurn use case.
func NewAnalyzeChurn(
	extractor *service.Extractor,
	log port.BuyerLog,
	notifier port.MarketingNotifier,
	clock port.Clock,
	telemetry Telemetry,
) *AnalyzeChurn {
	return &AnalyzeChurn{
		extractor: extractor,
		log:       log,
		notifier:  notifier,
		clock:     clock,
		telemetry: telemetry,
	}
}

// Execute scores the buyer and triggers a campaign when the probability
// crosses the medium threshold.
func (uc *AnalyzeChurn) Execute(ctx context.Context, req dto.AnalyzeChurnRequest) (dto.ChurnResponse, error) {
	ctx, span := tracer.Start(ctx, "AnalyzeChurn.Execute")
	defer span.End()

	act, err := uc.extractor.Buyer(service.BuyerInput{
		ID:             req.ID,
		Name:           req.Name,
		LastOrderDate:  req.LastOrderDate,
		OrderFrequency: req.OrderFrequency,
		BasketSize:     req.BasketSize,
	})
	if err != nil {
		failSpan(span, err, "invalid buyer input")
		return dto.ChurnResponse{}, fmt.Errorf("failed to extract buyer: %w", err)
	}

	now := uc.clock.Now()
	days := service.DaysSince(act.LastOrderAt, now)
	probability := service.ChurnProbability(act.OrderFrequency, act.BasketSize, days)

	record, err := model.NewBuyerRecord(
		act.ID, act.Name, act.LastOrderAt, act.OrderFrequency, act.BasketSize, days, probability, now,
	)
	if err != nil {
		failSpan(span, err, "invalid buyer record")
		return dto.ChurnResponse{}, fmt.Errorf("failed to create buyer record: %w", err)
	}

	if _, err := uc.log.Append(ctx, record); err != nil {
		failSpan(span, err, "append failed")
		return dto.ChurnResponse{}, fmt.Errorf("failed to append buyer record: %w", err)
	}

	span.SetAttributes(
		attribute.String("buyer.id", record.ID()),
		attribute.Float64("buyer.churn_probability", probability),
		attribute.String("buyer.risk_tier", record.Tier().String()),
	)
	uc.telemetry.Instruments.decision(ctx, PipelineChurn, record.Action().String())
	uc.telemetry.Instruments.churnProbability(ctx, probability)

	uc.telemetry.logger().InfoContext(ctx, "churn analysed",
		"buyer_id", record.ID(),
		"churn_probability", probability,
		"risk_tier", record.Tier().String(),
		"action_taken", record.Action().String(),
	)

	if campaign, ok := record.Campaign(); ok {
		uc.telemetry.notify(ctx, PipelineChurn, func(ctx context.Context) error {
			return uc.notifier.NotifyMarketingTrigger(ctx, record.ID(), record.Name(), record.Tier(), campaign)
		})
	}

	return dto.FromBuyerRecord(record), nil
}
