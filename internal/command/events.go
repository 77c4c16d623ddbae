package command

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventPublisher delivers catalog events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Event is the envelope published after every successful catalog mutation.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	Data       any       `json:"data"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newEvent(eventType, entityID string, data any, at time.Time) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		EntityID:   entityID,
		Data:       data,
		OccurredAt: at,
	}
}
