package valueobject

import "fmt"

// Credit score cut points for supplier risk.
const (
	LowRiskMinCreditScore    = 750.0
	MediumRiskMinCreditScore = 650.0
)

// RiskLevel is the supplier risk classification derived from a credit score.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "low"}
	RiskLevelMedium = RiskLevel{value: "medium"}
	RiskLevelHigh   = RiskLevel{value: "high"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "low":
		return RiskLevelLow, nil
	case "medium":
		return RiskLevelMedium, nil
	case "high":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
}

// RiskLevelFromCreditScore maps a credit score onto low (>=750),
// medium (>=650) or high.
func RiskLevelFromCreditScore(score float64) RiskLevel {
	switch {
	case score >= LowRiskMinCreditScore:
		return RiskLevelLow
	case score >= MediumRiskMinCreditScore:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Severity orders levels from 1 (low) to 3 (high); 0 when unset.
func (r RiskLevel) Severity() int {
	switch r.value {
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	default:
		return 0
	}
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

func (r RiskLevel) IsLow() bool { return r.value == "low" }
