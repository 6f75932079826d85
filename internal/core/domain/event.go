package domain

import "time"

// Topic names a stream of change notifications.
type Topic string

const (
	TopicProducts      Topic = "products"
	TopicCustomers     Topic = "customers"
	TopicSales         Topic = "sales"
	TopicLedgerEntries Topic = "ledger_entries"
)

// ValidTopic reports whether t is one of the known topics.
func ValidTopic(t Topic) bool {
	switch t {
	case TopicProducts, TopicCustomers, TopicSales, TopicLedgerEntries:
		return true
	}
	return false
}

// ChangeEvent tells subscribers that an aggregate changed. It carries no
// delta; consumers re-fetch the full state on notification. Delivery is
// at-most-once with no replay.
type ChangeEvent struct {
	Topic      Topic     `json:"topic"`
	EntityID   string    `json:"entityID"`
	Action     string    `json:"action"` // created | updated | deleted
	OccurredAt time.Time `json:"occurredAt"`
}
