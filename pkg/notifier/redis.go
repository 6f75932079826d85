package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
	portssvc "github.com/bodegapos/bodega-backend/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "bodega:changes:"

	// subscriberBuffer bounds how far a slow consumer can lag before events
	// are dropped. Consumers re-fetch on notification, so a dropped event
	// costs freshness, not correctness.
	subscriberBuffer = 16
)

// RedisNotifier fans change events out through Redis pub/sub, one channel per
// topic. Delivery is at-most-once with no replay.
type RedisNotifier struct {
	client *redis.Client
}

// Ensure RedisNotifier implements the portssvc.ChangeNotifier interface
var _ portssvc.ChangeNotifier = (*RedisNotifier)(nil)

// NewRedisNotifier connects to Redis at addr and verifies the connection.
func NewRedisNotifier(ctx context.Context, addr string) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("notifier: ping redis: %w", err)
	}

	return &RedisNotifier{client: client}, nil
}

// NewRedisNotifierFromClient wraps an existing client. The caller keeps
// ownership of the client's lifecycle in tests.
func NewRedisNotifierFromClient(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func channelFor(topic domain.Topic) string {
	return channelPrefix + string(topic)
}

// Publish sends the event to the topic's channel. Callers invoke it only
// after the originating transaction has committed.
func (n *RedisNotifier) Publish(ctx context.Context, event domain.ChangeEvent) error {
	if !domain.ValidTopic(event.Topic) {
		return fmt.Errorf("notifier: unknown topic %q", event.Topic)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notifier: marshal event: %w", err)
	}
	if err := n.client.Publish(ctx, channelFor(event.Topic), payload).Err(); err != nil {
		return fmt.Errorf("notifier: publish to %s: %w", event.Topic, err)
	}
	return nil
}

// Subscribe starts listening on a topic. The returned cancel func stops the
// subscription and closes the channel.
func (n *RedisNotifier) Subscribe(ctx context.Context, topic domain.Topic) (<-chan domain.ChangeEvent, func(), error) {
	if !domain.ValidTopic(topic) {
		return nil, nil, fmt.Errorf("notifier: unknown topic %q", topic)
	}

	pubsub := n.client.Subscribe(ctx, channelFor(topic))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("notifier: subscribe to %s: %w", topic, err)
	}

	out := make(chan domain.ChangeEvent, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event domain.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.Warn("Discarding malformed change event",
					slog.String("topic", string(topic)),
					slog.String("error", err.Error()),
				)
				continue
			}
			select {
			case out <- event:
			default:
				slog.Warn("Dropping change event for slow subscriber",
					slog.String("topic", string(topic)),
					slog.String("entity_id", event.EntityID),
				)
			}
		}
	}()

	cancel := func() {
		_ = pubsub.Close()
	}
	return out, cancel, nil
}

// Close tears down the notifier and its Redis connection. Open subscriptions
// observe their channels closing.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
