package model_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

var processedAt = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func TestNewSupplierRecord_Classifies(t *testing.T) {
	tests := []struct {
		score  float64
		risk   valueobject.RiskLevel
		status valueobject.DecisionStatus
	}{
		{780, valueobject.RiskLevelLow, valueobject.StatusApproved},
		{700, valueobject.RiskLevelMedium, valueobject.StatusNeedsReview},
		{620, valueobject.RiskLevelHigh, valueobject.StatusNeedsReview},
		{599, valueobject.RiskLevelHigh, valueobject.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.score), func(t *testing.T) {
			rec, err := model.NewSupplierRecord("Fresh Farms Co", decimal.NewFromInt(25000), valueobject.DefaultContractTerms, tt.score, processedAt)
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, rec.ID())
			assert.Equal(t, -1, rec.Index())
			assert.Equal(t, tt.risk, rec.RiskLevel())
			assert.Equal(t, tt.status, rec.Status())
			assert.Equal(t, tt.score, rec.CreditScore())
			assert.Equal(t, processedAt, rec.ProcessedAt())
		})
	}
}

func TestNewSupplierRecord_Validation(t *testing.T) {
	tests := []struct {
		name    string
		sName   string
		amount  decimal.Decimal
		terms   valueobject.ContractTerms
		score   float64
		wantErr string
	}{
		{"empty name", "", decimal.NewFromInt(1), valueobject.DefaultContractTerms, 700, "supplier name is required"},
		{"zero amount", "s", decimal.Zero, valueobject.DefaultContractTerms, 700, "invoice amount must be positive"},
		{"negative amount", "s", decimal.NewFromInt(-5), valueobject.DefaultContractTerms, 700, "invoice amount must be positive"},
		{"missing terms", "s", decimal.NewFromInt(1), valueobject.ContractTerms{}, 700, "contract terms are required"},
		{"score above scale", "s", decimal.NewFromInt(1), valueobject.DefaultContractTerms, 850.1, "credit score must be between"},
		{"negative score", "s", decimal.NewFromInt(1), valueobject.DefaultContractTerms, -1, "credit score must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewSupplierRecord(tt.sName, tt.amount, tt.terms, tt.score, processedAt)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSupplierRecord_WithIndexCopies(t *testing.T) {
	rec, err := model.NewSupplierRecord("Metro Distributors", decimal.NewFromInt(45000), valueobject.DefaultContractTerms, 760, processedAt)
	require.NoError(t, err)

	indexed := rec.WithIndex(3)
	assert.Equal(t, 3, indexed.Index())
	assert.Equal(t, -1, rec.Index())
	assert.Equal(t, rec.ID(), indexed.ID())
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("failed to extract supplier: %w", model.NewValidationError("amount", "is required"))

	assert.True(t, errors.Is(err, model.ErrValidation))

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "amount", verr.Field)
	assert.Equal(t, "amount: is required", verr.Error())
	assert.False(t, errors.Is(errors.New("amount: is required"), model.ErrValidation))
}
