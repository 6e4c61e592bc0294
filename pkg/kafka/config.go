package kafka

import (
	"crypto/tls"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Config holds Kafka connection parameters.
type Config struct {
	ClientID      string
	ConsumerGroup string

	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	Brokers []string

	// WriteTimeout bounds a single publish. Zero uses the kafka-go default.
	WriteTimeout time.Duration

	// TLS enables TLS for Kafka connections.
	TLS         bool
	SASLEnabled bool
}

// Validate reports configuration that cannot produce a working client.
func (c Config) Validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka: at least one broker is required")
	}
	if c.SASLEnabled {
		if _, err := c.saslMechanism(); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) saslMechanism() (sasl.Mechanism, error) {
	switch c.SASLMechanism {
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, c.SASLUsername, c.SASLPassword)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, c.SASLUsername, c.SASLPassword)
	case "PLAIN", "":
		return &plain.Mechanism{Username: c.SASLUsername, Password: c.SASLPassword}, nil
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", c.SASLMechanism)
	}
}

func (c Config) tlsConfig() *tls.Config {
	if !c.TLS {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// transport is used by writers.
func (c Config) transport() *kafkago.Transport {
	t := &kafkago.Transport{
		ClientID: c.ClientID,
		TLS:      c.tlsConfig(),
	}
	if c.SASLEnabled {
		if m, err := c.saslMechanism(); err == nil {
			t.SASL = m
		}
	}
	return t
}

// dialer is used by readers. Nil means the kafka-go default dialer.
func (c Config) dialer() *kafkago.Dialer {
	if !c.TLS && !c.SASLEnabled && c.ClientID == "" {
		return nil
	}
	d := &kafkago.Dialer{
		ClientID:  c.ClientID,
		Timeout:   10 * time.Second,
		DualStack: true,
		TLS:       c.tlsConfig(),
	}
	if c.SASLEnabled {
		if m, err := c.saslMechanism(); err == nil {
			d.SASLMechanism = m
		}
	}
	return d
}
