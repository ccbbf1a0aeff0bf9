package repository

import (
	"context"

	"manero/internal/domain/entity"
	"manero/internal/errors"

	"github.com/shopspring/decimal"
)

// Filterable product fields.
const (
	ProductFieldArticleNumber = "articleNumber"
	ProductFieldName          = "name"
	ProductFieldPrice         = "price"
	ProductFieldCategoryID    = "categoryId"
)

// ErrProductNotFound is returned when no product matches.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository persists catalog products.
type ProductRepository interface {
	Repository[entity.Product]

	// FindByArticleNumber retrieves a product with its category.
	FindByArticleNumber(ctx context.Context, articleNumber int64) (*entity.Product, error)

	// FindByName retrieves the product with exactly this name.
	FindByName(ctx context.Context, name string) (*entity.Product, error)

	// SearchByName returns the first product whose name contains term.
	SearchByName(ctx context.Context, term string) (*entity.Product, error)

	// ListByNameContains returns every product whose name contains term.
	ListByNameContains(ctx context.Context, term string) ([]*entity.Product, error)

	// FindByPriceRange returns products priced within [minPrice, maxPrice].
	FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]*entity.Product, error)

	// ListByCategoryID returns the products of a category.
	ListByCategoryID(ctx context.Context, categoryID int64) ([]*entity.Product, error)
}
