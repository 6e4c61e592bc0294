package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	infrakafka "github.com/watermelon/decision-engine/internal/infrastructure/kafka"
	"github.com/watermelon/decision-engine/pkg/kafka"
)

func tailCmd() *cobra.Command {
	var (
		brokers []string
		group   string
		topics  []string
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print notifications published to Kafka until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := kafka.Config{
				Brokers:       brokers,
				ClientID:      "enginectl",
				ConsumerGroup: group,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cmd, cmd.ErrOrStderr())
			handler := printHandler(cmd.OutOrStdout())

			g, ctx := errgroup.WithContext(cmd.Context())
			for _, topic := range topics {
				consumer := kafka.NewConsumer(cfg, topic, handler, logger)
				g.Go(func() error {
					defer consumer.Close()
					return consumer.Start(ctx)
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringSliceVar(&brokers, "brokers", []string{"localhost:9092"}, "Kafka brokers")
	cmd.Flags().StringVar(&group, "group", "", "Consumer group; empty reads from the latest offset without committing")
	cmd.Flags().StringSliceVar(&topics, "topics", infrakafka.DefaultTopics.All(), "Topics to follow")

	return cmd
}

// printHandler writes one line per message. Consumers share out, so writes
// are serialized.
func printHandler(out io.Writer) kafka.Handler {
	var mu sync.Mutex
	return func(_ context.Context, msg kafka.Message) error {
		mu.Lock()
		defer mu.Unlock()
		_, err := fmt.Fprintf(out, "[%s] %s %s key=%s %s\n",
			msg.Topic,
			msg.Headers["event_type"],
			msg.Headers["event_id"],
			msg.Key,
			msg.Value,
		)
		return err
	}
}
