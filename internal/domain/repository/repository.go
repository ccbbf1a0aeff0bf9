// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"manero/internal/errors"
)

var (
	// ErrRecordNotFound is returned by Read when no row matches.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUnknownField is returned when a Clause names a field the entity does not expose.
	ErrUnknownField = errors.New("unknown filter field")
)

// Repository is the generic persistence contract shared by every entity store.
type Repository[E any] interface {
	// Exists reports whether any row matches the criteria.
	Exists(ctx context.Context, criteria Criteria) (bool, error)

	// Create inserts the entity and writes generated keys back into it.
	Create(ctx context.Context, entity *E) error

	// Read returns the first row matching the criteria or ErrRecordNotFound.
	Read(ctx context.Context, criteria Criteria) (*E, error)

	// ReadAll returns every row matching the criteria.
	ReadAll(ctx context.Context, criteria Criteria) ([]*E, error)

	// Update saves every field of the entity, keyed by its primary key.
	Update(ctx context.Context, entity *E) error

	// Delete removes the rows matching the criteria and reports whether any existed.
	Delete(ctx context.Context, criteria Criteria) (bool, error)
}
