package shared

import (
	"context"
	"encoding/json"
	"time"
)

// Event represents a domain event
type Event interface {
	// EventID returns unique event identifier
	EventID() string
	// EventType returns the type of event
	EventType() string
	// AggregateID returns the ID of the aggregate that generated this event
	AggregateID() string
	// AggregateType returns the type of aggregate
	AggregateType() string
	// OccurredAt returns when the event occurred
	OccurredAt() time.Time
	// Data returns the event data as JSON
	Data() ([]byte, error)
}

// BaseEvent provides common event functionality
type BaseEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	AggrID    string          `json:"aggregate_id"`
	AggrType  string          `json:"aggregate_type"`
	Timestamp time.Time       `json:"occurred_at"`
	EventData json.RawMessage `json:"data"`
}

// EventID returns unique event identifier
func (e BaseEvent) EventID() string {
	return e.ID
}

// EventType returns the type of event
func (e BaseEvent) EventType() string {
	return e.Type
}

// AggregateID returns the ID of the aggregate
func (e BaseEvent) AggregateID() string {
	return e.AggrID
}

// AggregateType returns the type of aggregate
func (e BaseEvent) AggregateType() string {
	return e.AggrType
}

// OccurredAt returns when the event occurred
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// Data returns the event data as JSON
func (e BaseEvent) Data() ([]byte, error) {
	return e.EventData, nil
}

// NewBaseEvent creates a new base event
func NewBaseEvent(eventType, aggregateID, aggregateType string, data interface{}) (BaseEvent, error) {
	eventData, err := json.Marshal(data)
	if err != nil {
		return BaseEvent{}, err
	}

	return BaseEvent{
		ID:        NewID().String(),
		Type:      eventType,
		AggrID:    aggregateID,
		AggrType:  aggregateType,
		Timestamp: time.Now(),
		EventData: eventData,
	}, nil
}

// EventPublisher publishes domain events to interested parties
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
