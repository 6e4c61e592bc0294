package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent is embedded by concrete events. Its fields are flattened into the
// event's JSON encoding.
type BaseEvent struct {
	ID            string    `json:"event_id"`
	Type          string    `json:"event_type"`
	Aggregate     string    `json:"aggregate_id"`
	AggregateKind string    `json:"aggregate_type"`
	Timestamp     time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated id stamped at occurredAt.
// A zero occurredAt uses the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType string, occurredAt time.Time) BaseEvent {
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return BaseEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		Aggregate:     aggregateID,
		AggregateKind: aggregateType,
		Timestamp:     occurredAt.UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.AggregateKind }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
