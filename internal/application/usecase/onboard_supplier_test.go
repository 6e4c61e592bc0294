package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/watermelon/decision-engine/internal/application/dto"
	"github.com/watermelon/decision-engine/internal/application/usecase"
	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/service"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
	"github.com/watermelon/decision-engine/pkg/observability"
	"github.com/watermelon/decision-engine/pkg/testutil"
)

func quietTelemetry() usecase.Telemetry {
	return usecase.Telemetry{Logger: observability.Discard()}
}

func newOnboardSupplier(mode valueobject.ValidationMode, rng port.RandomSource, log port.SupplierLog, n port.CRMNotifier, tel usecase.Telemetry) *usecase.OnboardSupplier {
	clock := testutil.FixedClock{}
	return usecase.NewOnboardSupplier(
		service.NewExtractor(mode, rng, clock),
		service.NewCreditScorer(rng),
		log, n, clock, tel,
	)
}

func TestOnboardSupplier_Execute(t *testing.T) {
	t.Run("approves a NET30 supplier with neutral jitter", func(t *testing.T) {
		log := &mockSupplierLog{}
		notifier := &mockNotifier{}
		uc := newOnboardSupplier(valueobject.ValidationStrict, testutil.NeutralRandom{}, log, notifier, quietTelemetry())

		resp, err := uc.Execute(context.Background(), dto.OnboardSupplierRequest{
			SupplierName: "Green Valley Produce",
			Amount:       json.Number("30000"),
			Terms:        "NET30",
		})

		require.NoError(t, err)
		assert.Equal(t, 0, resp.SupplierIndex)
		assert.Equal(t, 780.0, resp.CreditScore)
		assert.Equal(t, "low", resp.RiskLevel)
		assert.Equal(t, "approved", resp.Status)
		assert.Equal(t, "30000", resp.InvoiceAmount)
		assert.Equal(t, testutil.FixedNow, resp.ProcessedAt)
		require.Len(t, log.appended, 1)
		require.Len(t, notifier.calls, 1)
		assert.Equal(t, "Green Valley Produce", notifier.calls[0].subject)
		assert.Equal(t, "approved", notifier.calls[0].detail)
	})

	t.Run("indexes suppliers in append order", func(t *testing.T) {
		log := &mockSupplierLog{}
		uc := newOnboardSupplier(valueobject.ValidationDefaultFill, testutil.NeutralRandom{}, log, &mockNotifier{}, quietTelemetry())

		for i := range 3 {
			resp, err := uc.Execute(context.Background(), dto.OnboardSupplierRequest{
				SupplierName: fmt.Sprintf("Supplier %d", i),
				Amount:       10000,
			})
			require.NoError(t, err)
			assert.Equal(t, i, resp.SupplierIndex)
		}
	})

	t.Run("routes low scores to review", func(t *testing.T) {
		rng := &testutil.ScriptedRandom{Uniforms: []float64{-50}}
		uc := newOnboardSupplier(valueobject.ValidationStrict, rng, &mockSupplierLog{}, &mockNotifier{}, quietTelemetry())

		resp, err := uc.Execute(context.Background(), dto.OnboardSupplierRequest{
			SupplierName: "Prime Suppliers",
			Amount:       8000,
			Terms:        "NET45",
		})

		require.NoError(t, err)
		assert.Equal(t, 640.0, resp.CreditScore)
		assert.Equal(t, "high", resp.RiskLevel)
		assert.Equal(t, "needs_review", resp.Status)
	})

	t.Run("strict mode rejects malformed amount", func(t *testing.T) {
		log := &mockSupplierLog{}
		notifier := &mockNotifier{}
		uc := newOnboardSupplier(valueobject.ValidationStrict, testutil.NeutralRandom{}, log, notifier, quietTelemetry())

		_, err := uc.Execute(context.Background(), dto.OnboardSupplierRequest{SupplierName: "X", Amount: "a lot"})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Empty(t, log.appended)
		assert.Empty(t, notifier.calls)
	})

	t.Run("fails when the log append fails", func(t *testing.T) {
		log := &mockSupplierLog{
			appendFunc: func(context.Context, *model.SupplierRecord) (int, error) {
				return 0, fmt.Errorf("database unavailable")
			},
		}
		notifier := &mockNotifier{}
		uc := newOnboardSupplier(valueobject.ValidationDefaultFill, testutil.NeutralRandom{}, log, notifier, quietTelemetry())

		_, err := uc.Execute(context.Background(), dto.OnboardSupplierRequest{SupplierName: "X", Amount: 100})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to append supplier record")
		assert.Empty(t, notifier.calls)
	})
}

func TestOnboardSupplier_NotifierFailureDoesNotChangeResult(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	instruments, err := usecase.NewInstruments(provider.Meter("test"))
	require.NoError(t, err)

	tel := quietTelemetry()
	tel.Instruments = instruments

	req := dto.OnboardSupplierRequest{SupplierName: "Fresh Farms Co", Amount: 30000, Terms: "NET30"}

	healthy, err := newOnboardSupplier(valueobject.ValidationStrict, testutil.NeutralRandom{}, &mockSupplierLog{}, &mockNotifier{}, tel).
		Execute(context.Background(), req)
	require.NoError(t, err)

	failing := &mockNotifier{err: errCRMUnreachable}
	degraded, err := newOnboardSupplier(valueobject.ValidationStrict, testutil.NeutralRandom{}, &mockSupplierLog{}, failing, tel).
		Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, failing.calls, 1)
	assert.Equal(t, healthy.CreditScore, degraded.CreditScore)
	assert.Equal(t, healthy.RiskLevel, degraded.RiskLevel)
	assert.Equal(t, healthy.Status, degraded.Status)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(1), sumOf(rm, "decision_engine.notification_failures"))
	assert.Equal(t, int64(2), sumOf(rm, "decision_engine.decisions"))
}

func TestOnboardSupplier_NotifiesDespiteCancelledCaller(t *testing.T) {
	notifier := &mockNotifier{}
	uc := newOnboardSupplier(valueobject.ValidationStrict, testutil.NeutralRandom{}, &mockSupplierLog{}, notifier, quietTelemetry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, dto.OnboardSupplierRequest{SupplierName: "Metro Distributors", Amount: 45000, Terms: "NET15"})

	require.NoError(t, err)
	require.Len(t, notifier.calls, 1)
	assert.NoError(t, notifier.calls[0].ctxErr)
}

func sumOf(rm metricdata.ResourceMetrics, name string) int64 {
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}
