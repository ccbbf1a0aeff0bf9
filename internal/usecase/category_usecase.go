package usecase

import (
	"context"

	"manero/internal/domain/entity"
)

// CategoryInput is the writable shape of a category.
type CategoryInput struct {
	Name string
}

// CategoryUsecase defines catalog category operations.
type CategoryUsecase interface {
	Create(ctx context.Context, input *CategoryInput) ServiceResponse[*entity.Category]
	GetAll(ctx context.Context) ServiceResponse[[]*entity.Category]
	GetByID(ctx context.Context, id int64) ServiceResponse[*entity.Category]
	GetProductsByCategory(ctx context.Context, categoryID int64) ServiceResponse[[]*entity.Product]
	Search(ctx context.Context, term string) ServiceResponse[*entity.Category]
}
