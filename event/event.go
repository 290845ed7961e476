// Package event provides an in-process event dispatcher with listener
// priorities, async delivery over a goroutine pool, and interceptors. The
// cache component subscribes its invalidation rules here.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is the event contract.
type Event interface {
	// Name is the event's unique identifier, e.g. "inventory.product.updated".
	Name() string
}

// BaseEvent can be embedded into concrete event structs.
type BaseEvent struct {
	id         string
	name       string
	occurredAt time.Time
}

// NewEvent creates a base event stamped with an id and the current time.
func NewEvent(name string) BaseEvent {
	return BaseEvent{
		id:         uuid.NewString(),
		name:       name,
		occurredAt: time.Now(),
	}
}

// ID returns the event id.
func (e BaseEvent) ID() string {
	return e.id
}

// Name returns the event name.
func (e BaseEvent) Name() string {
	return e.name
}

// OccurredAt returns when the event was created.
func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}
