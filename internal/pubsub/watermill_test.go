package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardRemoved struct {
	CardID string `json:"card_id"`
}

func TestWatermillBridge_TypedRoundTrip(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	event := NewEvent[cardRemoved]("test.card.removed")
	received := make(chan cardRemoved, 1)

	err := bridge.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		payload, err := Decode(event, msg)
		if err != nil {
			return err
		}
		received <- payload
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, Publish(ctx, bridge, event, cardRemoved{CardID: "c1"}))

	select {
	case got := <-received:
		assert.Equal(t, "c1", got.CardID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestDecode_TopicMismatch(t *testing.T) {
	event := NewEvent[cardRemoved]("test.card.removed")
	_, err := Decode(event, Message{Topic: "other", Payload: []byte(`{}`)})
	assert.Error(t, err)
}

func TestMessageMapping(t *testing.T) {
	msg := Message{Topic: "t", Payload: []byte("p"), Metadata: map[string]string{"k": "v"}}
	back := mapToPubSubMessage(mapToWatermillMessage(msg))
	assert.Equal(t, msg, back)
}
