package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

// MaxCreditScore is the upper bound of the credit score scale.
const MaxCreditScore = 850.0

// SupplierRecord is the outcome of one onboarding request. It is immutable.
type SupplierRecord struct {
	processedAt   time.Time
	name          string
	invoiceAmount decimal.Decimal
	terms         valueobject.ContractTerms
	riskLevel     valueobject.RiskLevel
	status        valueobject.DecisionStatus
	creditScore   float64
	index         int
	id            uuid.UUID
}

// NewSupplierRecord classifies creditScore and applies the onboarding policy.
// The index is unassigned (-1) until the record is appended to a log.
func NewSupplierRecord(
	name string,
	invoiceAmount decimal.Decimal,
	terms valueobject.ContractTerms,
	creditScore float64,
	processedAt time.Time,
) (*SupplierRecord, error) {
	if name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}
	if !invoiceAmount.IsPositive() {
		return nil, fmt.Errorf("invoice amount must be positive")
	}
	if terms.IsZero() {
		return nil, fmt.Errorf("contract terms are required")
	}
	if creditScore < 0 || creditScore > MaxCreditScore {
		return nil, fmt.Errorf("credit score must be between 0 and %v, got %v", MaxCreditScore, creditScore)
	}

	risk := valueobject.RiskLevelFromCreditScore(creditScore)

	return &SupplierRecord{
		id:            uuid.New(),
		index:         -1,
		name:          name,
		invoiceAmount: invoiceAmount,
		terms:         terms,
		creditScore:   creditScore,
		riskLevel:     risk,
		status:        valueobject.DecideOnboarding(creditScore, risk),
		processedAt:   processedAt.UTC(),
	}, nil
}

// ReconstructSupplierRecord rebuilds a record from persisted data (no validation).
func ReconstructSupplierRecord(
	id uuid.UUID,
	index int,
	name string,
	invoiceAmount decimal.Decimal,
	terms valueobject.ContractTerms,
	creditScore float64,
	riskLevel valueobject.RiskLevel,
	status valueobject.DecisionStatus,
	processedAt time.Time,
) *SupplierRecord {
	return &SupplierRecord{
		id:            id,
		index:         index,
		name:          name,
		invoiceAmount: invoiceAmount,
		terms:         terms,
		creditScore:   creditScore,
		riskLevel:     riskLevel,
		status:        status,
		processedAt:   processedAt,
	}
}

// WithIndex returns a copy positioned at index in the onboarding log.
func (s *SupplierRecord) WithIndex(index int) *SupplierRecord {
	c := *s
	c.index = index
	return &c
}

// --- Accessors ---

func (s *SupplierRecord) ID() uuid.UUID                      { return s.id }
func (s *SupplierRecord) Index() int                         { return s.index }
func (s *SupplierRecord) Name() string                       { return s.name }
func (s *SupplierRecord) InvoiceAmount() decimal.Decimal     { return s.invoiceAmount }
func (s *SupplierRecord) Terms() valueobject.ContractTerms   { return s.terms }
func (s *SupplierRecord) CreditScore() float64               { return s.creditScore }
func (s *SupplierRecord) RiskLevel() valueobject.RiskLevel   { return s.riskLevel }
func (s *SupplierRecord) Status() valueobject.DecisionStatus { return s.status }
func (s *SupplierRecord) ProcessedAt() time.Time             { return s.processedAt }
