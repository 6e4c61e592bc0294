package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Message represents a Kafka message.
type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes messages, lazily creating one writer per topic.
type Producer struct {
	mu        sync.Mutex
	writers   map[string]*kafkago.Writer
	brokers   []string
	transport *kafkago.Transport
	timeout   time.Duration
}

// NewProducer creates a new Producer with the given configuration.
func NewProducer(cfg Config) *Producer {
	return &Producer{
		writers:   make(map[string]*kafkago.Writer),
		brokers:   cfg.Brokers,
		transport: cfg.transport(),
		timeout:   cfg.WriteTimeout,
	}
}

// Publish sends messages to the specified topic.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	w := p.getOrCreateWriter(topic)

	kafkaMessages := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		kafkaMessages = append(kafkaMessages, toKafkaMessage(msg))
	}

	if err := w.WriteMessages(ctx, kafkaMessages...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close closes all writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return firstErr
}

func (p *Producer) getOrCreateWriter(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafkago.RequireAll,
		WriteTimeout:           p.timeout,
		Transport:              p.transport,
		AllowAutoTopicCreation: true,
	}
	p.writers[topic] = w
	return w
}

func toKafkaMessage(msg Message) kafkago.Message {
	km := kafkago.Message{
		Key:   msg.Key,
		Value: msg.Value,
	}
	for k, v := range msg.Headers {
		km.Headers = append(km.Headers, kafkago.Header{
			Key:   k,
			Value: []byte(v),
		})
	}
	return km
}

func fromKafkaMessage(m kafkago.Message) Message {
	msg := Message{
		Topic:   m.Topic,
		Key:     m.Key,
		Value:   m.Value,
		Headers: make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
