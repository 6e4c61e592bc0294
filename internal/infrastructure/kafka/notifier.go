package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/watermelon/decision-engine/internal/domain/event"
	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
	"github.com/watermelon/decision-engine/pkg/events"
	pkgkafka "github.com/watermelon/decision-engine/pkg/kafka"
)

// Topics names the topic each notification channel publishes to.
type Topics struct {
	CRM       string
	Marketing string
	Inventory string
}

// DefaultTopics are used when no override is configured.
var DefaultTopics = Topics{
	CRM:       "decision-engine.crm.supplier-updates",
	Marketing: "decision-engine.marketing.campaigns",
	Inventory: "decision-engine.inventory.alerts",
}

// All returns the topics in channel order.
func (t Topics) All() []string {
	return []string{t.CRM, t.Marketing, t.Inventory}
}

// Publisher is satisfied by *pkgkafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Notifier implements port.Notifier by publishing domain events to Kafka,
// keyed by aggregate id so per-entity ordering holds within a partition.
type Notifier struct {
	publisher Publisher
	clock     port.Clock
	logger    *slog.Logger
	topics    Topics
}

// NewNotifier creates a new Kafka notifier.
func NewNotifier(publisher Publisher, topics Topics, clock port.Clock, logger *slog.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		topics:    topics,
		clock:     clock,
		logger:    logger,
	}
}

func (n *Notifier) NotifyCRMUpdate(ctx context.Context, supplierName string, status valueobject.DecisionStatus) error {
	return n.publish(ctx, n.topics.CRM, event.NewSupplierStatusUpdated(supplierName, status.String(), n.clock.Now()))
}

func (n *Notifier) NotifyMarketingTrigger(ctx context.Context, buyerID, buyerName string, tier valueobject.ChurnTier, campaign valueobject.CampaignKind) error {
	return n.publish(ctx, n.topics.Marketing, event.NewCampaignTriggered(
		buyerID, buyerName, tier.String(), campaign.String(), campaign.Message(), n.clock.Now(),
	))
}

func (n *Notifier) NotifyInventoryAlert(ctx context.Context, productID string, risk valueobject.InventoryRisk) error {
	return n.publish(ctx, n.topics.Inventory, event.NewInventoryAlertRaised(productID, risk.String(), n.clock.Now()))
}

func (n *Notifier) publish(ctx context.Context, topic string, evt events.DomainEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
	}

	n.logger.DebugContext(ctx, "publishing event",
		slog.String("event_type", evt.EventType()),
		slog.String("topic", topic),
		slog.Int("payload_size", len(payload)),
	)

	msg := pkgkafka.Message{
		Key:   []byte(evt.AggregateID()),
		Value: payload,
		Headers: map[string]string{
			"event_id":   evt.EventID(),
			"event_type": evt.EventType(),
		},
	}
	if err := n.publisher.Publish(ctx, topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s to topic %s: %w", evt.EventType(), topic, err)
	}

	return nil
}
