package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

// KafkaContainer wraps a testcontainers Kafka instance.
type KafkaContainer struct {
	Container *kafka.KafkaContainer
	Brokers   []string
}

// NewKafkaContainer starts a Kafka container and registers its termination
// with t.Cleanup.
func NewKafkaContainer(ctx context.Context, t *testing.T) *KafkaContainer {
	t.Helper()

	kafkaContainer, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.6.1",
		kafka.WithClusterID("decision-engine-test"),
	)
	if err != nil {
		t.Fatalf("failed to start kafka container: %v", err)
	}

	kc := &KafkaContainer{Container: kafkaContainer}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate kafka container: %v", err)
		}
	})

	kc.Brokers, err = kafkaContainer.Brokers(ctx)
	if err != nil {
		t.Fatalf("failed to get kafka brokers: %v", err)
	}

	return kc
}
