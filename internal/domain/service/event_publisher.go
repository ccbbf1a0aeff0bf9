package service

import (
	"context"

	"manero/internal/domain/entity"
)

// EventPublisher publishes domain events to a message topic.
type EventPublisher interface {
	// Publish sends the event and waits for the broker to accept it.
	Publish(ctx context.Context, event *entity.Event) error

	// Close releases any resources held by the publisher
	Close() error
}
