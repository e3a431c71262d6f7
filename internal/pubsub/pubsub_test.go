package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Text string `json:"text"`
}

var greetingEvent = NewEvent[greeting]("test.greeting")

func TestTypedRoundTrip(t *testing.T) {
	bus := NewWatermillBridge(true)
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Message, 1)
	payloads := make(chan greeting, 1)
	err := Subscribe(ctx, bus, greetingEvent, func(ctx context.Context, g greeting, msg Message) error {
		payloads <- g
		received <- msg
		return nil
	})
	require.NoError(t, err)

	err = Publish(ctx, bus, greetingEvent, greeting{Text: "展碁"}, map[string]string{"request_id": "r1"})
	require.NoError(t, err)

	select {
	case g := <-payloads:
		assert.Equal(t, "展碁", g.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	msg := <-received
	assert.Equal(t, "test.greeting", msg.Topic)
	assert.Equal(t, "r1", msg.Metadata["request_id"])
	_, hasTopic := msg.Metadata[metaKeyTopic]
	assert.False(t, hasTopic)
}

func TestSubscribe_BadPayloadIsDropped(t *testing.T) {
	bus := NewWatermillBridge(true)
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan greeting, 2)
	require.NoError(t, Subscribe(ctx, bus, greetingEvent, func(ctx context.Context, g greeting, msg Message) error {
		got <- g
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, Message{Topic: greetingEvent.Name(), Payload: []byte("not json")}))
	require.NoError(t, Publish(ctx, bus, greetingEvent, greeting{Text: "ok"}, nil))

	select {
	case g := <-got:
		assert.Equal(t, "ok", g.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}
