package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriverCreatedEvent(t *testing.T) {
	t.Parallel()

	event := NewDriverCreatedEvent(42)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, int64(42), event.DriverID)
	assert.False(t, event.OccurredAt.IsZero())

	// Every event gets its own id
	other := NewDriverCreatedEvent(42)
	assert.NotEqual(t, event.ID, other.ID)
}

func TestInMemoryPublisher(t *testing.T) {
	t.Parallel()

	t.Run("records published events in order", func(t *testing.T) {
		t.Parallel()
		publisher := NewInMemoryPublisher(nil)

		first := NewDriverCreatedEvent(1)
		second := NewDriverCreatedEvent(2)
		require.NoError(t, publisher.Publish(context.Background(), first))
		require.NoError(t, publisher.Publish(context.Background(), second))

		published := publisher.Published()
		require.Len(t, published, 2)
		assert.Equal(t, first.ID, published[0].ID)
		assert.Equal(t, second.ID, published[1].ID)
	})

	t.Run("configured failure rejects without recording", func(t *testing.T) {
		t.Parallel()
		publisher := NewInMemoryPublisher(nil)
		failure := errors.New("broker down")
		publisher.FailWith = failure

		err := publisher.Publish(context.Background(), NewDriverCreatedEvent(1))
		assert.ErrorIs(t, err, failure)
		assert.Empty(t, publisher.Published())
	})

	t.Run("Published returns a copy", func(t *testing.T) {
		t.Parallel()
		publisher := NewInMemoryPublisher(nil)
		require.NoError(t, publisher.Publish(context.Background(), NewDriverCreatedEvent(1)))

		snapshot := publisher.Published()
		snapshot[0] = nil

		assert.NotNil(t, publisher.Published()[0])
	})
}
