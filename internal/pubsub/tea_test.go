package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_DeliversEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()
	ctx := context.Background()

	ch := broker.Subscribe(ctx)
	cmd := ListenCmd(ctx, ch)

	broker.Publish(CreatedEvent, "friends")

	msg := cmd()
	ev, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, CreatedEvent, ev.Type)
	require.Equal(t, "friends", ev.Payload)
}

func TestListenCmd_NilOnCancel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cmd := ListenCmd(ctx, ch)

	cancel()
	require.Eventually(t, func() bool {
		return cmd() == nil
	}, time.Second, 10*time.Millisecond)
}

func TestListenCmd_NilOnClosedChannel(t *testing.T) {
	broker := NewBroker[string]()
	ctx := context.Background()
	ch := broker.Subscribe(ctx)
	cmd := ListenCmd(ctx, ch)

	broker.Close()
	require.Nil(t, cmd())
}
