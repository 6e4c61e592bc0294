// Package messaging holds notifier adapters that do not need a broker.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

// LogNotifier narrates notifications to a logger instead of delivering
// them. It never fails.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyCRMUpdate(ctx context.Context, supplierName string, status valueobject.DecisionStatus) error {
	n.logger.InfoContext(ctx, fmt.Sprintf("Zoho CRM Update: %s -> %s", supplierName, status),
		"channel", "crm",
		"supplier_name", supplierName,
		"status", status.String(),
	)
	return nil
}

func (n *LogNotifier) NotifyMarketingTrigger(ctx context.Context, buyerID, buyerName string, tier valueobject.ChurnTier, campaign valueobject.CampaignKind) error {
	n.logger.InfoContext(ctx, fmt.Sprintf("Marketing: %s for %s", campaign.Message(), buyerName),
		"channel", "marketing",
		"buyer_id", buyerID,
		"risk_tier", tier.String(),
		"campaign", campaign.String(),
	)
	return nil
}

func (n *LogNotifier) NotifyInventoryAlert(ctx context.Context, productID string, risk valueobject.InventoryRisk) error {
	n.logger.InfoContext(ctx, fmt.Sprintf("Inventory Alert: %s - Risk: %s", productID, risk),
		"channel", "inventory",
		"product_id", productID,
		"risk_level", risk.String(),
	)
	return nil
}

// Fanout delivers every notification to each notifier in order and joins
// their errors. One failing notifier does not stop the others.
type Fanout []port.Notifier

func (f Fanout) NotifyCRMUpdate(ctx context.Context, supplierName string, status valueobject.DecisionStatus) error {
	var errs []error
	for _, n := range f {
		errs = append(errs, n.NotifyCRMUpdate(ctx, supplierName, status))
	}
	return errors.Join(errs...)
}

func (f Fanout) NotifyMarketingTrigger(ctx context.Context, buyerID, buyerName string, tier valueobject.ChurnTier, campaign valueobject.CampaignKind) error {
	var errs []error
	for _, n := range f {
		errs = append(errs, n.NotifyMarketingTrigger(ctx, buyerID, buyerName, tier, campaign))
	}
	return errors.Join(errs...)
}

func (f Fanout) NotifyInventoryAlert(ctx context.Context, productID string, risk valueobject.InventoryRisk) error {
	var errs []error
	for _, n := range f {
		errs = append(errs, n.NotifyInventoryAlert(ctx, productID, risk))
	}
	return errors.Join(errs...)
}
