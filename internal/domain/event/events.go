package event

import (
	"time"

	"github.com/watermelon/decision-engine/pkg/events"
)

const (
	// EventTypeSupplierStatusUpdated carries an onboarding outcome to the CRM.
	EventTypeSupplierStatusUpdated = "crm.supplier.updated"

	// EventTypeCampaignTriggered carries a retention campaign to marketing.
	EventTypeCampaignTriggered = "marketing.campaign.triggered"

	// EventTypeInventoryAlertRaised carries a low-stock alert.
	EventTypeInventoryAlertRaised = "inventory.alert.raised"
)

// SupplierStatusUpdated is published after every onboarding decision.
type SupplierStatusUpdated struct {
	events.BaseEvent
	SupplierName string `json:"supplier_name"`
	Status       string `json:"status"`
}

// NewSupplierStatusUpdated creates a SupplierStatusUpdated keyed by supplier name.
func NewSupplierStatusUpdated(supplierName, status string, at time.Time) SupplierStatusUpdated {
	return SupplierStatusUpdated{
		BaseEvent:    events.NewBaseEvent(EventTypeSupplierStatusUpdated, supplierName, "supplier", at),
		SupplierName: supplierName,
		Status:       status,
	}
}

// CampaignTriggered is published when a buyer crosses a churn threshold.
type CampaignTriggered struct {
	events.BaseEvent
	BuyerID   string `json:"buyer_id"`
	BuyerName string `json:"buyer_name"`
	RiskTier  string `json:"risk_tier"`
	Campaign  string `json:"campaign"`
	Message   string `json:"message"`
}

// NewCampaignTriggered creates a CampaignTriggered keyed by buyer id.
func NewCampaignTriggered(buyerID, buyerName, tier, campaign, message string, at time.Time) CampaignTriggered {
	return CampaignTriggered{
		BaseEvent: events.NewBaseEvent(EventTypeCampaignTriggered, buyerID, "buyer", at),
		BuyerID:   buyerID,
		BuyerName: buyerName,
		RiskTier:  tier,
		Campaign:  campaign,
		Message:   message,
	}
}

// InventoryAlertRaised is published when inventory falls below the alert threshold.
type InventoryAlertRaised struct {
	events.BaseEvent
	ProductID string `json:"product_id"`
	RiskLevel string `json:"risk_level"`
}

// NewInventoryAlertRaised creates an InventoryAlertRaised keyed by product id.
func NewInventoryAlertRaised(productID, riskLevel string, at time.Time) InventoryAlertRaised {
	return InventoryAlertRaised{
		BaseEvent: events.NewBaseEvent(EventTypeInventoryAlertRaised, productID, "product", at),
		ProductID: productID,
		RiskLevel: riskLevel,
	}
}
