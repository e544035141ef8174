package events

import (
	"context"
	"encoding/json"
	"time"

	"gofish/models"
)

// Broadcaster delivers an event to locally connected clients
type Broadcaster interface {
	Broadcast(event models.GameEvent)
}

// Publisher hands a game event to whatever fans it out
type Publisher interface {
	Publish(ctx context.Context, event models.GameEvent) error
}

// NewEvent creates an event of the given type stamped with the current time
func NewEvent(eventType, userID string) models.GameEvent {
	return models.GameEvent{
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}

// MarshalEvent marshals an event to JSON string for Redis Stream
func MarshalEvent(event models.GameEvent) (string, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalEvent unmarshals a JSON string to an event
func UnmarshalEvent(data string) (models.GameEvent, error) {
	var event models.GameEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return models.GameEvent{}, err
	}
	return event, nil
}

// HubPublisher broadcasts straight to the in-process hub. Used when Redis is
// not configured and only one instance serves websocket clients.
type HubPublisher struct {
	Hub Broadcaster
}

func (p HubPublisher) Publish(_ context.Context, event models.GameEvent) error {
	p.Hub.Broadcast(event)
	return nil
}
