package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/watermelon/decision-engine/internal/domain/model"
)

// OnboardSupplierRequest is the input DTO for the OnboardSupplier use case.
// Fields are left untyped so the extractor can tell absent from malformed.
type OnboardSupplierRequest struct {
	SupplierName any `json:"supplier_name" yaml:"supplier_name"`
	Amount       any `json:"amount" yaml:"amount"`
	Terms        any `json:"terms" yaml:"terms"`
}

// SupplierResponse is the output DTO returned after an onboarding decision.
type SupplierResponse struct {
	ProcessedAt   time.Time `json:"processed_at"`
	SupplierID    uuid.UUID `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	InvoiceAmount string    `json:"invoice_amount"`
	Terms         string    `json:"terms"`
	Status        string    `json:"status"`
	RiskLevel     string    `json:"risk_level"`
	CreditScore   float64   `json:"credit_score"`
	SupplierIndex int       `json:"supplier_index"`
}

// SupplierListResponse is returned by the supplier log query.
type SupplierListResponse struct {
	Suppliers []SupplierResponse `json:"suppliers"`
	Count     int                `json:"count"`
}

// FromSupplierRecord maps a domain record to the response DTO.
func FromSupplierRecord(r *model.SupplierRecord) SupplierResponse {
	return SupplierResponse{
		SupplierIndex: r.Index(),
		SupplierID:    r.ID(),
		SupplierName:  r.Name(),
		InvoiceAmount: r.InvoiceAmount().String(),
		Terms:         r.Terms().String(),
		Status:        r.Status().String(),
		RiskLevel:     r.RiskLevel().String(),
		CreditScore:   r.CreditScore(),
		ProcessedAt:   r.ProcessedAt(),
	}
}
