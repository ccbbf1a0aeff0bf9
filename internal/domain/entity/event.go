package entity

import "time"

// EventType names a catalog or identity event published to subscribers.
type EventType string

const (
	EventUserRegistered  EventType = "user.registered"
	EventProductCreated  EventType = "product.created"
	EventProductUpdated  EventType = "product.updated"
	EventProductDeleted  EventType = "product.deleted"
	EventCategoryCreated EventType = "category.created"
)

// Event is the message body published for domain changes.
type Event struct {
	Type       EventType      `json:"type"`
	SubjectID  string         `json:"subjectId"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType EventType, subjectID string, payload map[string]any) *Event {
	return &Event{
		Type:       eventType,
		SubjectID:  subjectID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
