package eventbus

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"

	"github.com/danghamo/zoo/pkg/logger"
)

// Journal consumes every event on a bus, logs it and keeps per-type counts
type Journal struct {
	logger *logger.Logger

	mu     sync.Mutex
	counts map[string]int
	last   Envelope

	done chan struct{}
}

// StartJournal subscribes to the bus and consumes events until ctx is done or
// the bus is closed
func StartJournal(ctx context.Context, bus *Bus, log *logger.Logger) (*Journal, error) {
	messages, err := bus.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	j := &Journal{
		logger: log.WithComponent("journal"),
		counts: make(map[string]int),
		done:   make(chan struct{}),
	}
	go j.run(messages)

	return j, nil
}

func (j *Journal) run(messages <-chan *message.Message) {
	defer close(j.done)

	for msg := range messages {
		env, err := DecodeEnvelope(msg)
		if err != nil {
			j.logger.Warn("Dropping undecodable event", zap.String("message_id", msg.UUID), zap.Error(err))
			msg.Ack()
			continue
		}

		j.record(env)
		msg.Ack()
	}
}

func (j *Journal) record(env Envelope) {
	j.mu.Lock()
	j.counts[env.Type]++
	j.last = env
	j.mu.Unlock()

	j.logger.Debug("Event recorded",
		zap.String("event_type", env.Type),
		zap.String("aggregate_type", env.AggregateType),
		zap.String("aggregate_id", env.AggregateID),
		zap.ByteString("data", env.Data),
	)
}

// Count returns how many events of the given type were recorded
func (j *Journal) Count(eventType string) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.counts[eventType]
}

// Total returns how many events were recorded
func (j *Journal) Total() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	total := 0
	for _, n := range j.counts {
		total += n
	}
	return total
}

// Last returns the most recently recorded event
func (j *Journal) Last() (Envelope, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last, j.last.ID != ""
}

// Done is closed once the journal has stopped consuming
func (j *Journal) Done() <-chan struct{} {
	return j.done
}
