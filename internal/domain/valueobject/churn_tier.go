package valueobject

import "fmt"

// Churn probability cut points. Both comparisons are strict.
const (
	HighRiskAboveProbability   = 0.7
	MediumRiskAboveProbability = 0.4
)

// ChurnTier is the campaign tier selected for a buyer.
type ChurnTier struct {
	value string
}

var (
	ChurnTierNone       = ChurnTier{value: "none"}
	ChurnTierMediumRisk = ChurnTier{value: "medium_risk"}
	ChurnTierHighRisk   = ChurnTier{value: "high_risk"}
)

// ChurnTierFromString reconstructs a ChurnTier from its string representation.
func ChurnTierFromString(s string) (ChurnTier, error) {
	switch s {
	case "none":
		return ChurnTierNone, nil
	case "medium_risk":
		return ChurnTierMediumRisk, nil
	case "high_risk":
		return ChurnTierHighRisk, nil
	default:
		return ChurnTier{}, fmt.Errorf("invalid churn tier: %q", s)
	}
}

// ChurnTierFromProbability: p > 0.7 is high risk, 0.4 < p <= 0.7 medium risk.
func ChurnTierFromProbability(p float64) ChurnTier {
	switch {
	case p > HighRiskAboveProbability:
		return ChurnTierHighRisk
	case p > MediumRiskAboveProbability:
		return ChurnTierMediumRisk
	default:
		return ChurnTierNone
	}
}

func (t ChurnTier) String() string { return t.value }

func (t ChurnTier) IsZero() bool { return t.value == "" }

func (t ChurnTier) Equal(other ChurnTier) bool { return t.value == other.value }

// Triggers reports whether the tier fires a campaign.
func (t ChurnTier) Triggers() bool {
	return t.value == "medium_risk" || t.value == "high_risk"
}

// Campaign returns the campaign fired for the tier.
func (t ChurnTier) Campaign() (CampaignKind, bool) {
	switch t.value {
	case "high_risk":
		return CampaignDiscountOutreach, true
	case "medium_risk":
		return CampaignFollowUpTask, true
	default:
		return CampaignKind{}, false
	}
}

// CampaignKind distinguishes the two marketing triggers.
type CampaignKind struct {
	value string
}

var (
	CampaignDiscountOutreach = CampaignKind{value: "discount_outreach"}
	CampaignFollowUpTask     = CampaignKind{value: "follow_up_task"}
)

// CampaignKindFromString reconstructs a CampaignKind from its string representation.
func CampaignKindFromString(s string) (CampaignKind, error) {
	switch s {
	case "discount_outreach":
		return CampaignDiscountOutreach, nil
	case "follow_up_task":
		return CampaignFollowUpTask, nil
	default:
		return CampaignKind{}, fmt.Errorf("invalid campaign kind: %q", s)
	}
}

func (c CampaignKind) String() string { return c.value }

func (c CampaignKind) IsZero() bool { return c.value == "" }

// Message is the outreach text sent with the campaign.
func (c CampaignKind) Message() string {
	switch c.value {
	case "discount_outreach":
		return "Discount email + WhatsApp nudge"
	case "follow_up_task":
		return "Follow-up task created"
	default:
		return ""
	}
}

// ChurnAction is the action reported back to the caller. It depends only on
// whether the medium threshold was crossed, not on which campaign fired.
type ChurnAction struct {
	value string
}

var (
	ActionMarketingTriggered = ChurnAction{value: "marketing_triggered"}
	ActionNoAction           = ChurnAction{value: "no_action"}
)

// ChurnActionFromString reconstructs a ChurnAction from its string representation.
func ChurnActionFromString(s string) (ChurnAction, error) {
	switch s {
	case "marketing_triggered":
		return ActionMarketingTriggered, nil
	case "no_action":
		return ActionNoAction, nil
	default:
		return ChurnAction{}, fmt.Errorf("invalid churn action: %q", s)
	}
}

// ChurnActionFromProbability: p > 0.4 reports marketing_triggered.
func ChurnActionFromProbability(p float64) ChurnAction {
	if p > MediumRiskAboveProbability {
		return ActionMarketingTriggered
	}
	return ActionNoAction
}

func (a ChurnAction) String() string { return a.value }

func (a ChurnAction) IsZero() bool { return a.value == "" }

func (a ChurnAction) Equal(other ChurnAction) bool { return a.value == other.value }
