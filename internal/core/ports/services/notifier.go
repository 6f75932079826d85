package services

import (
	"context"

	"github.com/bodegapos/bodega-backend/internal/core/domain"
)

// ChangeNotifier fans out change events to interested sessions. Delivery is
// at-most-once: a publish while nobody listens is dropped, and there is no
// replay for late subscribers. Consumers treat an event as a hint to re-fetch.
type ChangeNotifier interface {
	// Publish sends an event to the topic's current subscribers. It must only
	// be called after the originating transaction has committed.
	Publish(ctx context.Context, event domain.ChangeEvent) error

	// Subscribe starts listening on a topic. The returned cancel func stops
	// the subscription and closes the channel.
	Subscribe(ctx context.Context, topic domain.Topic) (<-chan domain.ChangeEvent, func(), error)

	// Close tears down the notifier and all its subscriptions.
	Close() error
}
