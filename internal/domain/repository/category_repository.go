package repository

import (
	"context"

	"manero/internal/domain/entity"
	"manero/internal/errors"
)

// Filterable category fields.
const (
	CategoryFieldID   = "id"
	CategoryFieldName = "name"
)

// ErrCategoryNotFound is returned when no category matches.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository persists product categories.
type CategoryRepository interface {
	Repository[entity.Category]

	// FindByID retrieves a category without its products.
	FindByID(ctx context.Context, id int64) (*entity.Category, error)

	// FindByName retrieves the category with exactly this name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// SearchByName returns the first category whose name contains term.
	SearchByName(ctx context.Context, term string) (*entity.Category, error)
}
