package port

import (
	"context"

	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

// CRMNotifier pushes supplier onboarding outcomes to the CRM.
type CRMNotifier interface {
	NotifyCRMUpdate(ctx context.Context, supplierName string, status valueobject.DecisionStatus) error
}

// MarketingNotifier fires retention campaigns for buyers at risk of churning.
type MarketingNotifier interface {
	NotifyMarketingTrigger(ctx context.Context, buyerID, buyerName string, tier valueobject.ChurnTier, campaign valueobject.CampaignKind) error
}

// InventoryNotifier raises low-stock alerts.
type InventoryNotifier interface {
	NotifyInventoryAlert(ctx context.Context, productID string, risk valueobject.InventoryRisk) error
}

// Notifier is implemented by adapters that serve all three channels.
type Notifier interface {
	CRMNotifier
	MarketingNotifier
	InventoryNotifier
}
