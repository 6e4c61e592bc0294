package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/watermelon/decision-engine/internal/application/usecase"

// Pipeline names used as the "pipeline" attribute on spans and metrics.
const (
	PipelineSupplier = "supplier"
	PipelineChurn    = "churn"
	PipelineDemand   = "demand"
)

var tracer = otel.Tracer(instrumentationName)

// Instruments holds the metric instruments recorded by the use cases.
type Instruments struct {
	decisions          metric.Int64Counter
	notifyFailures     metric.Int64Counter
	creditScores       metric.Float64Histogram
	churnProbabilities metric.Float64Histogram
	predictedDemand    metric.Int64Histogram
}

// NewInstruments creates the use case instruments on meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	decisions, err := meter.Int64Counter("decision_engine.decisions",
		metric.WithDescription("Decisions made, by pipeline and outcome."))
	if err != nil {
		return nil, fmt.Errorf("failed to create decisions counter: %w", err)
	}

	notifyFailures, err := meter.Int64Counter("decision_engine.notification_failures",
		metric.WithDescription("Notifications that could not be delivered, by pipeline."))
	if err != nil {
		return nil, fmt.Errorf("failed to create notification failures counter: %w", err)
	}

	creditScores, err := meter.Float64Histogram("decision_engine.credit_score",
		metric.WithDescription("Supplier credit scores."),
		metric.WithExplicitBucketBoundaries(550, 600, 650, 700, 750, 800, 850))
	if err != nil {
		return nil, fmt.Errorf("failed to create credit score histogram: %w", err)
	}

	churnProbabilities, err := meter.Float64Histogram("decision_engine.churn_probability",
		metric.WithDescription("Buyer churn probabilities."),
		metric.WithExplicitBucketBoundaries(0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to create churn probability histogram: %w", err)
	}

	predictedDemand, err := meter.Int64Histogram("decision_engine.predicted_demand",
		metric.WithDescription("Predicted product demand in units."))
	if err != nil {
		return nil, fmt.Errorf("failed to create predicted demand histogram: %w", err)
	}

	return &Instruments{
		decisions:          decisions,
		notifyFailures:     notifyFailures,
		creditScores:       creditScores,
		churnProbabilities: churnProbabilities,
		predictedDemand:    predictedDemand,
	}, nil
}

func (i *Instruments) decision(ctx context.Context, pipeline, outcome string) {
	if i == nil {
		return
	}
	i.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("outcome", outcome),
	))
}

func (i *Instruments) notificationFailed(ctx context.Context, pipeline string) {
	if i == nil {
		return
	}
	i.notifyFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("pipeline", pipeline)))
}

func (i *Instruments) creditScore(ctx context.Context, v float64) {
	if i != nil {
		i.creditScores.Record(ctx, v)
	}
}

func (i *Instruments) churnProbability(ctx context.Context, v float64) {
	if i != nil {
		i.churnProbabilities.Record(ctx, v)
	}
}

func (i *Instruments) demand(ctx context.Context, v int) {
	if i != nil {
		i.predictedDemand.Record(ctx, int64(v))
	}
}

// Telemetry bundles the logger, instruments and notification deadline
// shared by the use cases. The zero value logs to slog.Default and records
// no metrics.
type Telemetry struct {
	Logger        *slog.Logger
	Instruments   *Instruments
	NotifyTimeout time.Duration
}

func (t Telemetry) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}

// notify delivers a notification and absorbs its failure. The caller's
// cancellation does not abort delivery; NotifyTimeout bounds it instead.
func (t Telemetry) notify(ctx context.Context, pipeline string, send func(context.Context) error) {
	nctx := context.WithoutCancel(ctx)
	if t.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		nctx, cancel = context.WithTimeout(nctx, t.NotifyTimeout)
		defer cancel()
	}

	if err := send(nctx); err != nil {
		trace.SpanFromContext(ctx).AddEvent("notification failed", trace.WithAttributes(
			attribute.String("error", err.Error()),
		))
		t.logger().WarnContext(ctx, "notification failed",
			"pipeline", pipeline,
			"error", err,
		)
		t.Instruments.notificationFailed(ctx, pipeline)
	}
}

func failSpan(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}
