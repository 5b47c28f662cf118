package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/pkg/logger"
)

func TestJournal_RecordsEvents(t *testing.T) {
	ctx := context.Background()
	bus := NewGoChannel("zoo.journal", logger.NewNop())

	journal, err := StartJournal(ctx, bus, logger.NewNop())
	require.NoError(t, err)

	for _, eventType := range []string{"cage.opened", "cage.animal_admitted", "cage.animal_admitted"} {
		event, err := shared.NewBaseEvent(eventType, "1", "cage", nil)
		require.NoError(t, err)
		require.NoError(t, bus.Publish(ctx, event))
	}

	assert.Eventually(t, func() bool {
		return journal.Total() == 3
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, journal.Count("cage.opened"))
	assert.Equal(t, 2, journal.Count("cage.animal_admitted"))
	assert.Equal(t, 0, journal.Count("cage.animal_released"))

	last, ok := journal.Last()
	require.True(t, ok)
	assert.Equal(t, "cage", last.AggregateType)

	require.NoError(t, bus.Close())

	select {
	case <-journal.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("journal did not stop after the bus closed")
	}
}

func TestJournal_SkipsUndecodable(t *testing.T) {
	ctx := context.Background()
	bus := NewGoChannel("zoo.journal", logger.NewNop())
	defer bus.Close()

	journal, err := StartJournal(ctx, bus, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, bus.publisher.Publish(bus.Topic(), message.NewMessage(watermill.NewUUID(), []byte("{"))))

	event, err := shared.NewBaseEvent("animal.registered", "a", "animal", nil)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(ctx, event))

	assert.Eventually(t, func() bool {
		return journal.Count("animal.registered") == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, journal.Total())
}

func TestJournal_RequiresSubscriber(t *testing.T) {
	bus := &Bus{topic: "zoo.events", logger: logger.NewNop()}

	_, err := StartJournal(context.Background(), bus, logger.NewNop())
	assert.Error(t, err)
}
