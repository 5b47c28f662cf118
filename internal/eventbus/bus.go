package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/pkg/logger"
)

// Metadata keys set on every published message
const (
	MetadataEventType     = "event_type"
	MetadataAggregateID   = "aggregate_id"
	MetadataAggregateType = "aggregate_type"
)

// Envelope is the wire form of a domain event
type Envelope struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Data          json.RawMessage `json:"data"`
}

// Bus publishes domain events to a single watermill topic
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	topic      string
	logger     *logger.Logger
}

var _ shared.EventPublisher = (*Bus)(nil)

// NewGoChannel creates an in-process bus. Events published while nobody is
// subscribed are dropped.
func NewGoChannel(topic string, log *logger.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		NewLoggerAdapter(log.WithComponent("watermill")),
	)

	return &Bus{
		publisher:  pubSub,
		subscriber: pubSub,
		topic:      topic,
		logger:     log.WithComponent("eventbus"),
	}
}

// NewRedisStream creates a bus that appends events to a Redis stream
func NewRedisStream(client redis.UniversalClient, topic string, maxLen int64, log *logger.Logger) (*Bus, error) {
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client:        client,
			Marshaller:    redisstream.DefaultMarshallerUnmarshaller{},
			DefaultMaxlen: maxLen,
		},
		NewLoggerAdapter(log.WithComponent("watermill")),
	)
	if err != nil {
		return nil, fmt.Errorf("create redis stream publisher: %w", err)
	}

	return &Bus{
		publisher: publisher,
		topic:     topic,
		logger:    log.WithComponent("eventbus"),
	}, nil
}

// Topic returns the topic events are published to
func (b *Bus) Topic() string {
	return b.topic
}

// Publish wraps the event in an Envelope and publishes it
func (b *Bus) Publish(ctx context.Context, event shared.Event) error {
	data, err := event.Data()
	if err != nil {
		return fmt.Errorf("read event data: %w", err)
	}

	payload, err := json.Marshal(Envelope{
		ID:            event.EventID(),
		Type:          event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt(),
		Data:          data,
	})
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	msg := message.NewMessage(event.EventID(), payload)
	msg.Metadata.Set(MetadataEventType, event.EventType())
	msg.Metadata.Set(MetadataAggregateID, event.AggregateID())
	msg.Metadata.Set(MetadataAggregateType, event.AggregateType())
	msg.SetContext(ctx)

	if err := b.publisher.Publish(b.topic, msg); err != nil {
		b.logger.Error("Failed to publish event",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID()),
			zap.Error(err),
		)
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}

	b.logger.Debug("Published event",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID()),
	)

	return nil
}

// Subscribe returns the stream of messages on the bus topic. Only the
// in-process bus supports subscriptions.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	if b.subscriber == nil {
		return nil, fmt.Errorf("bus on topic %s does not support subscriptions", b.topic)
	}
	return b.subscriber.Subscribe(ctx, b.topic)
}

// Close releases the publisher
func (b *Bus) Close() error {
	return b.publisher.Close()
}

// DecodeEnvelope parses a message published by Bus
func DecodeEnvelope(msg *message.Message) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope %s: %w", msg.UUID, err)
	}
	return env, nil
}
