package usecase

import (
	"context"
	"io"

	"manero/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProductInput is the writable shape of a product. The category is referenced
// by name and created when it does not exist yet.
type ProductInput struct {
	Name                  string
	SupplierArticleNumber string
	Description           string
	Price                 decimal.Decimal
	ImageURL              string
	CategoryName          string
}

// SearchResult pairs the product and category matched by a search term.
// Either side may be nil.
type SearchResult struct {
	Product  *entity.Product
	Category *entity.Category
}

// ImageUpload is a product image sent by a client.
type ImageUpload struct {
	ContentType string
	Body        io.Reader
}

// ProductUsecase defines catalog product operations.
type ProductUsecase interface {
	Create(ctx context.Context, input *ProductInput) ServiceResponse[*entity.Product]
	GetAll(ctx context.Context) ServiceResponse[[]*entity.Product]
	GetByArticleNumber(ctx context.Context, articleNumber int64) ServiceResponse[*entity.Product]
	Update(ctx context.Context, articleNumber int64, input *ProductInput) ServiceResponse[*entity.Product]
	Delete(ctx context.Context, articleNumber int64) ServiceResponse[struct{}]
	Search(ctx context.Context, term string) ServiceResponse[*SearchResult]
	SearchByName(ctx context.Context, name string) ServiceResponse[[]*entity.Product]
	FilterByPrice(ctx context.Context, minPrice, maxPrice decimal.Decimal) ServiceResponse[[]*entity.Product]
	QRCode(ctx context.Context, articleNumber int64) ServiceResponse[[]byte]
	UploadImage(ctx context.Context, articleNumber int64, upload *ImageUpload) ServiceResponse[*entity.Product]
}
