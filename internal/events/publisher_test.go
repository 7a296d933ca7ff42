package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillPublisher_DeliversEnvelope(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubsub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	messages, err := pubsub.Subscribe(ctx, "test-topic")
	require.NoError(t, err)

	publisher := NewWatermillPublisher(pubsub, "test-topic")
	event := AttemptGraded("user-1", 3, 9, 12.5, false)
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventAttemptGraded), msg.Metadata.Get("event_type"))

		var got Event
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, 12.5, got.Data["total_score"])
	case <-ctx.Done():
		t.Fatal("event was not delivered")
	}
}

func TestNewPublisher_InProcessWithoutBrokers(t *testing.T) {
	p, err := NewPublisher(PublisherConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTopic, p.topicName)
	assert.NoError(t, p.Publish(context.Background(), AssessmentGenerated("u", 1, 5, 600)))
	assert.NoError(t, p.Close())
}

func TestMockPublisher(t *testing.T) {
	m := &MockPublisher{}
	require.NoError(t, m.Publish(context.Background(), AssessmentGenerated("u", 1, 5, 600)))
	require.NoError(t, m.Publish(context.Background(), AttemptGraded("u", 1, 2, 0, false)))
	assert.Len(t, m.Published(EventAssessmentGenerated), 1)

	m.Err = errors.New("broker down")
	assert.Error(t, m.Publish(context.Background(), AssessmentGenerated("u", 1, 5, 600)))
}
