package valueobject

import (
	"fmt"
	"math"
)

// MaxQuantity bounds every unit count the engine stores: demand, inventory,
// order frequency. Larger inputs are clamped or rejected before scoring.
const MaxQuantity = math.MaxInt32

// Inventory-to-demand ratio cut points.
const (
	CriticalBelowRatio = 0.5
	HighBelowRatio     = 0.8
)

// Alert threshold as a fraction of predicted demand, in fifths so the floor
// is exact integer arithmetic. It coincides with HighBelowRatio numerically
// but is compared against a different quantity.
const (
	alertThresholdNumerator   = 4
	alertThresholdDenominator = 5
)

// AlertThreshold is floor(0.8 * demand) for non-negative demand.
func AlertThreshold(demand int) int {
	if demand <= 0 {
		return 0
	}
	// Split into whole fifths and remainder so no intermediate exceeds demand.
	return demand/alertThresholdDenominator*alertThresholdNumerator +
		demand%alertThresholdDenominator*alertThresholdNumerator/alertThresholdDenominator
}

// ShouldAlert reports inventory below the alert threshold. It is evaluated
// separately from InventoryRiskFromRatio and the two may disagree.
func ShouldAlert(inventory, demand int) bool {
	return inventory < AlertThreshold(demand)
}

// InventoryRisk classifies stock cover against predicted demand.
type InventoryRisk struct {
	value string
}

var (
	InventoryRiskNormal   = InventoryRisk{value: "normal"}
	InventoryRiskHigh     = InventoryRisk{value: "high"}
	InventoryRiskCritical = InventoryRisk{value: "critical"}
)

// InventoryRiskFromString reconstructs an InventoryRisk from its string representation.
func InventoryRiskFromString(s string) (InventoryRisk, error) {
	switch s {
	case "normal":
		return InventoryRiskNormal, nil
	case "high":
		return InventoryRiskHigh, nil
	case "critical":
		return InventoryRiskCritical, nil
	default:
		return InventoryRisk{}, fmt.Errorf("invalid inventory risk: %q", s)
	}
}

// InventoryRiskFromRatio classifies inventory/demand. Zero demand counts as
// a ratio of 1.
func InventoryRiskFromRatio(inventory, demand int) InventoryRisk {
	ratio := 1.0
	if demand != 0 {
		ratio = float64(inventory) / float64(demand)
	}
	switch {
	case ratio < CriticalBelowRatio:
		return InventoryRiskCritical
	case ratio < HighBelowRatio:
		return InventoryRiskHigh
	default:
		return InventoryRiskNormal
	}
}

// String returns the string representation.
func (r InventoryRisk) String() string {
	return r.value
}

// Severity orders levels from 1 (normal) to 3 (critical); 0 when unset.
func (r InventoryRisk) Severity() int {
	switch r.value {
	case "normal":
		return 1
	case "high":
		return 2
	case "critical":
		return 3
	default:
		return 0
	}
}

// IsZero returns true if the InventoryRisk has not been set.
func (r InventoryRisk) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another InventoryRisk.
func (r InventoryRisk) Equal(other InventoryRisk) bool {
	return r.value == other.value
}
