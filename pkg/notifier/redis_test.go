package notifier_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bodegapos/bodega-backend/internal/core/domain"
	"github.com/bodegapos/bodega-backend/pkg/notifier"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) *notifier.RedisNotifier {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return notifier.NewRedisNotifierFromClient(client)
}

func TestPublishSubscribe(t *testing.T) {
	n := newTestNotifier(t)
	ctx := context.Background()

	events, cancel, err := n.Subscribe(ctx, domain.TopicProducts)
	require.NoError(t, err)
	defer cancel()

	sent := domain.ChangeEvent{
		Topic:      domain.TopicProducts,
		EntityID:   "p-123",
		Action:     "updated",
		OccurredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, n.Publish(ctx, sent))

	select {
	case got := <-events:
		require.Equal(t, sent.EntityID, got.EntityID)
		require.Equal(t, sent.Action, got.Action)
		require.Equal(t, domain.TopicProducts, got.Topic)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribeUnknownTopic(t *testing.T) {
	n := newTestNotifier(t)

	events, cancel, err := n.Subscribe(context.Background(), domain.Topic("weather"))
	require.Error(t, err)
	require.Nil(t, events)
	require.Nil(t, cancel)
}

func TestPublishUnknownTopic(t *testing.T) {
	n := newTestNotifier(t)

	err := n.Publish(context.Background(), domain.ChangeEvent{Topic: "weather", EntityID: "x"})
	require.Error(t, err)
}

func TestTopicsAreIsolated(t *testing.T) {
	n := newTestNotifier(t)
	ctx := context.Background()

	productEvents, cancel, err := n.Subscribe(ctx, domain.TopicProducts)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, n.Publish(ctx, domain.ChangeEvent{
		Topic:    domain.TopicCustomers,
		EntityID: "c-9",
		Action:   "updated",
	}))

	select {
	case got := <-productEvents:
		t.Fatalf("received event from another topic: %+v", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCancelClosesChannel(t *testing.T) {
	n := newTestNotifier(t)

	events, cancel, err := n.Subscribe(context.Background(), domain.TopicSales)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		require.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
