// Package pubsub provides a small generic publish/subscribe broker. The
// application service uses it to announce address book changes, and the
// logger uses it to stream log lines into the UI.
package pubsub

import "time"

// EventType classifies what happened to the payload.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event carries a typed payload to subscribers.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
