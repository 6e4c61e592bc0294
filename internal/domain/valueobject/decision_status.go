package valueobject

import "fmt"

// RejectBelowCreditScore is the credit score under which onboarding is rejected.
const RejectBelowCreditScore = 600.0

// DecisionStatus is the outcome of supplier onboarding.
type DecisionStatus struct {
	value string
}

var (
	StatusPending     = DecisionStatus{value: "pending"}
	StatusApproved    = DecisionStatus{value: "approved"}
	StatusRejected    = DecisionStatus{value: "rejected"}
	StatusNeedsReview = DecisionStatus{value: "needs_review"}
)

// DecisionStatusFromString reconstructs a status from its string representation.
func DecisionStatusFromString(s string) (DecisionStatus, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	case "needs_review":
		return StatusNeedsReview, nil
	default:
		return DecisionStatus{}, fmt.Errorf("invalid decision status: %q", s)
	}
}

// DecideOnboarding applies the onboarding policy. Approval requires both the
// score threshold and a low risk level, even though the level is itself
// derived from the same threshold.
func DecideOnboarding(creditScore float64, risk RiskLevel) DecisionStatus {
	switch {
	case creditScore >= LowRiskMinCreditScore && risk.IsLow():
		return StatusApproved
	case creditScore < RejectBelowCreditScore:
		return StatusRejected
	default:
		return StatusNeedsReview
	}
}

// String returns the string representation.
func (d DecisionStatus) String() string {
	return d.value
}

// IsZero returns true if the status has not been set.
func (d DecisionStatus) IsZero() bool {
	return d.value == ""
}

// Equal checks equality with another DecisionStatus.
func (d DecisionStatus) Equal(other DecisionStatus) bool {
	return d.value == other.value
}

// IsFinal is false only for pending.
func (d DecisionStatus) IsFinal() bool {
	return d.value != "" && d.value != "pending"
}

func (d DecisionStatus) IsApproved() bool    { return d.value == "approved" }
func (d DecisionStatus) IsRejected() bool    { return d.value == "rejected" }
func (d DecisionStatus) IsNeedsReview() bool { return d.value == "needs_review" }
