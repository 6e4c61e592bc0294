package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watermelon/decision-engine/internal/application/dto"
	"github.com/watermelon/decision-engine/internal/application/usecase"
	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/internal/domain/service"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
	"github.com/watermelon/decision-engine/pkg/testutil"
)

func newAnalyzeChurn(mode valueobject.ValidationMode, log *mockBuyerLog, n *mockNotifier) *usecase.AnalyzeChurn {
	clock := testutil.FixedClock{}
	return usecase.NewAnalyzeChurn(service.NewExtractor(mode, testutil.NeutralRandom{}, clock), log, n, clock, quietTelemetry())
}

func daysAgo(n int) string {
	return testutil.FixedNow.Add(-time.Duration(n) * 24 * time.Hour).Format(time.RFC3339)
}

func TestAnalyzeChurn_Execute(t *testing.T) {
	t.Run("loyal buyer takes no action", func(t *testing.T) {
		log := &mockBuyerLog{}
		notifier := &mockNotifier{}
		uc := newAnalyzeChurn(valueobject.ValidationStrict, log, notifier)

		resp, err := uc.Execute(context.Background(), dto.AnalyzeChurnRequest{
			ID:             "buyer_004",
			Name:           "Fast Food Chain D",
			LastOrderDate:  daysAgo(0),
			OrderFrequency: 30,
			BasketSize:     1000,
		})

		require.NoError(t, err)
		assert.Equal(t, "buyer_004", resp.BuyerID)
		assert.Equal(t, 0.0, resp.ChurnProbability)
		assert.Equal(t, "no_action", resp.ActionTaken)
		assert.Equal(t, "none", resp.RiskTier)
		assert.Empty(t, resp.Campaign)
		assert.Len(t, log.appended, 1)
		assert.Empty(t, notifier.calls)
	})

	t.Run("dormant buyer triggers the high risk campaign", func(t *testing.T) {
		notifier := &mockNotifier{}
		uc := newAnalyzeChurn(valueobject.ValidationStrict, &mockBuyerLog{}, notifier)

		resp, err := uc.Execute(context.Background(), dto.AnalyzeChurnRequest{
			ID:             "buyer_005",
			Name:           "Catering Service E",
			LastOrderDate:  daysAgo(120),
			OrderFrequency: 0,
			BasketSize:     0,
		})

		require.NoError(t, err)
		assert.Equal(t, 1.0, resp.ChurnProbability)
		assert.Equal(t, "marketing_triggered", resp.ActionTaken)
		assert.Equal(t, "high_risk", resp.RiskTier)
		assert.Equal(t, "discount_outreach", resp.Campaign)
		require.Len(t, notifier.calls, 1)
		assert.Equal(t, "buyer_005/Catering Service E", notifier.calls[0].subject)
		assert.Equal(t, "high_risk", notifier.calls[0].detail)
		assert.Equal(t, "discount_outreach", notifier.calls[0].extra)
	})

	t.Run("medium risk buyer gets a follow-up task", func(t *testing.T) {
		notifier := &mockNotifier{}
		uc := newAnalyzeChurn(valueobject.ValidationStrict, &mockBuyerLog{}, notifier)

		// 0.4*(1-8/30) + 0.4*(45/90) + 0.2*(1-400/1000) ≈ 0.613
		resp, err := uc.Execute(context.Background(), dto.AnalyzeChurnRequest{
			ID:             "buyer_002",
			Name:           "Cafe Network B",
			LastOrderDate:  daysAgo(45),
			OrderFrequency: 8,
			BasketSize:     400,
		})

		require.NoError(t, err)
		assert.InDelta(t, 0.6133, resp.ChurnProbability, 1e-3)
		assert.Equal(t, 45, resp.DaysSinceLastOrder)
		assert.Equal(t, "marketing_triggered", resp.ActionTaken)
		assert.Equal(t, "medium_risk", resp.RiskTier)
		require.Len(t, notifier.calls, 1)
		assert.Equal(t, "follow_up_task", notifier.calls[0].extra)
	})

	t.Run("default-fill assumes a 90 day old order", func(t *testing.T) {
		uc := newAnalyzeChurn(valueobject.ValidationDefaultFill, &mockBuyerLog{}, &mockNotifier{})

		resp, err := uc.Execute(context.Background(), dto.AnalyzeChurnRequest{ID: "buyer_x"})

		require.NoError(t, err)
		assert.Equal(t, "buyer_x", resp.BuyerName)
		assert.Equal(t, 90, resp.DaysSinceLastOrder)
		assert.Equal(t, 1.0, resp.ChurnProbability)
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		log := &mockBuyerLog{}
		uc := newAnalyzeChurn(valueobject.ValidationDefaultFill, log, &mockNotifier{})

		_, err := uc.Execute(context.Background(), dto.AnalyzeChurnRequest{Name: "anonymous"})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Empty(t, log.appended)
	})

	t.Run("failing notifier is absorbed", func(t *testing.T) {
		notifier := &mockNotifier{err: errCRMUnreachable}
		uc := newAnalyzeChurn(valueobject.ValidationStrict, &mockBuyerLog{}, notifier)

		resp, err := uc.Execute(context.Background(), dto.AnalyzeChurnRequest{
			ID: "buyer_005", LastOrderDate: daysAgo(90), OrderFrequency: 0, BasketSize: 0,
		})

		require.NoError(t, err)
		assert.Equal(t, "marketing_triggered", resp.ActionTaken)
		assert.Len(t, notifier.calls, 1)
	})
}
