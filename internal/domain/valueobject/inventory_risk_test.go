package valueobject_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

func TestInventoryRiskFromRatio(t *testing.T) {
	tests := []struct {
		name      string
		inventory int
		demand    int
		expected  valueobject.InventoryRisk
	}{
		{"ratio 0.78 is high", 78, 100, valueobject.InventoryRiskHigh},
		{"ratio 0.82 is normal", 82, 100, valueobject.InventoryRiskNormal},
		{"ratio exactly 0.8 is normal", 80, 100, valueobject.InventoryRiskNormal},
		{"ratio exactly 0.5 is high", 50, 100, valueobject.InventoryRiskHigh},
		{"ratio 0.49 is critical", 49, 100, valueobject.InventoryRiskCritical},
		{"empty shelf is critical", 0, 40, valueobject.InventoryRiskCritical},
		{"zero demand counts as ratio 1", 0, 0, valueobject.InventoryRiskNormal},
		{"overstock is normal", 500, 100, valueobject.InventoryRiskNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, valueobject.InventoryRiskFromRatio(tt.inventory, tt.demand))
		})
	}
}

func TestInventoryRisk_MonotonicInInventory(t *testing.T) {
	prev := valueobject.InventoryRiskFromRatio(0, 120)
	for inv := 0; inv <= 240; inv++ {
		risk := valueobject.InventoryRiskFromRatio(inv, 120)
		assert.LessOrEqual(t, risk.Severity(), prev.Severity(), "inventory %d", inv)
		prev = risk
	}
}

func TestInventoryRisk_FromString(t *testing.T) {
	for _, s := range []string{"normal", "high", "critical"} {
		r, err := valueobject.InventoryRiskFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, r.String())
	}
	_, err := valueobject.InventoryRiskFromString("medium")
	assert.Error(t, err)
}

func TestAlertThreshold(t *testing.T) {
	tests := []struct {
		demand   int
		expected int
	}{
		{100, 80},
		{0, 0},
		{1, 0},
		{5, 4},
		{99, 79},
		{123, 98},
		{9, 7},
		{valueobject.MaxQuantity, 1717986917},
		{math.MaxInt, math.MaxInt/5*4 + 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, valueobject.AlertThreshold(tt.demand), "demand %d", tt.demand)
	}
}

func TestShouldAlert_IndependentOfRatioTier(t *testing.T) {
	// 78/100: ratio tier high, threshold 80, alert fires.
	assert.True(t, valueobject.ShouldAlert(78, 100))
	assert.Equal(t, valueobject.InventoryRiskHigh, valueobject.InventoryRiskFromRatio(78, 100))

	// 82/100: ratio tier normal, no alert.
	assert.False(t, valueobject.ShouldAlert(82, 100))
	assert.Equal(t, valueobject.InventoryRiskNormal, valueobject.InventoryRiskFromRatio(82, 100))

	// 80/100: exactly at the threshold, no alert and normal.
	assert.False(t, valueobject.ShouldAlert(80, 100))

	// 79/99: ratio 0.797 is high, yet floor(79.2)=79 so no alert fires.
	assert.Equal(t, valueobject.InventoryRiskHigh, valueobject.InventoryRiskFromRatio(79, 99))
	assert.False(t, valueobject.ShouldAlert(79, 99))

	// Zero demand: ratio defined as 1, threshold 0, never alerts.
	assert.False(t, valueobject.ShouldAlert(0, 0))
}

func TestShouldAlert_LargeDemandWithNoStock(t *testing.T) {
	for _, demand := range []int{valueobject.MaxQuantity, math.MaxInt / 3, math.MaxInt} {
		assert.True(t, valueobject.ShouldAlert(0, demand), "demand %d", demand)
		assert.Positive(t, valueobject.AlertThreshold(demand), "demand %d", demand)
	}
}
