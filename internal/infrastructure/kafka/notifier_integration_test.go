package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watermelon/decision-engine/internal/domain/event"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
	infrakafka "github.com/watermelon/decision-engine/internal/infrastructure/kafka"
	pkgkafka "github.com/watermelon/decision-engine/pkg/kafka"
	"github.com/watermelon/decision-engine/pkg/observability"
	"github.com/watermelon/decision-engine/pkg/testutil"
)

func TestNotifier_Integration(t *testing.T) {
	testutil.RequireIntegration(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kc := testutil.NewKafkaContainer(ctx, t)
	cfg := pkgkafka.Config{
		Brokers:       kc.Brokers,
		ClientID:      "decision-engine-test",
		ConsumerGroup: "decision-engine-it",
		WriteTimeout:  10 * time.Second,
	}

	producer := pkgkafka.NewProducer(cfg)
	t.Cleanup(func() { _ = producer.Close() })

	logger := observability.Discard()
	n := infrakafka.NewNotifier(producer, infrakafka.DefaultTopics, testutil.FixedClock{}, logger)
	require.NoError(t, n.NotifyInventoryAlert(ctx, "PROD_001", valueobject.InventoryRiskHigh))

	received := make(chan pkgkafka.Message, 1)
	consumer := pkgkafka.NewConsumer(cfg, infrakafka.DefaultTopics.Inventory, func(_ context.Context, msg pkgkafka.Message) error {
		select {
		case received <- msg:
		default:
		}
		return nil
	}, logger)
	t.Cleanup(func() { _ = consumer.Close() })

	consumeCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() { _ = consumer.Start(consumeCtx) }()

	select {
	case msg := <-received:
		assert.Equal(t, "PROD_001", string(msg.Key))
		assert.Equal(t, event.EventTypeInventoryAlertRaised, msg.Headers["event_type"])

		var payload map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &payload))
		assert.Equal(t, "high", payload["risk_level"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for inventory alert")
	}
}
