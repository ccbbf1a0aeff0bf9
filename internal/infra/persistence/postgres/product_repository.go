package postgres

import (
	"context"

	"manero/internal/domain/entity"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/domain/repository"
	"manero/internal/errors"
	"manero/internal/infra/persistence/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
// Every read preloads the product's category.
type productRepository struct {
	*gormRepository[model.ProductModel, entity.Product]
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		gormRepository: &gormRepository[model.ProductModel, entity.Product]{
			db:   db,
			name: "product",
			columns: map[string]string{
				repository.ProductFieldArticleNumber: "article_number",
				repository.ProductFieldName:          "name",
				repository.ProductFieldPrice:         "price",
				repository.ProductFieldCategoryID:    "category_id",
			},
			preloads:   []string{"Category"},
			order:      "article_number ASC",
			toDomain:   toProductDomain,
			fromDomain: fromProductDomain,
			afterCreate: func(m *model.ProductModel, p *entity.Product) {
				p.ArticleNumber = m.ArticleNumber
				p.CreatedAt = m.CreatedAt
			},
		},
	}
}

func (repo *productRepository) FindByArticleNumber(ctx context.Context, articleNumber int64) (*entity.Product, error) {
	return repo.readOne(ctx, repository.Where(repository.ProductFieldArticleNumber, articleNumber))
}

func (repo *productRepository) FindByName(ctx context.Context, name string) (*entity.Product, error) {
	return repo.readOne(ctx, repository.Where(repository.ProductFieldName, name))
}

func (repo *productRepository) SearchByName(ctx context.Context, term string) (*entity.Product, error) {
	products, err := repo.ReadAll(ctx, repository.Criteria{}.Contains(repository.ProductFieldName, term))
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, repository.ErrProductNotFound
	}

	return products[0], nil
}

func (repo *productRepository) ListByNameContains(ctx context.Context, term string) ([]*entity.Product, error) {
	return repo.ReadAll(ctx, repository.Criteria{}.Contains(repository.ProductFieldName, term))
}

// FindByPriceRange returns products with minPrice <= price <= maxPrice.
func (repo *productRepository) FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]*entity.Product, error) {
	return repo.ReadAll(ctx, repository.Criteria{}.
		Gte(repository.ProductFieldPrice, minPrice).
		Lte(repository.ProductFieldPrice, maxPrice))
}

func (repo *productRepository) ListByCategoryID(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	return repo.ReadAll(ctx, repository.Where(repository.ProductFieldCategoryID, categoryID))
}

// Update saves the product. A missing row maps to ErrProductNotFound.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	err := repo.gormRepository.Update(ctx, product)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return repository.ErrProductNotFound
	}
	if errors.Is(err, domainerrors.ErrConflict) {
		return domainerrors.ErrProductAlreadyExists.WrapMessage("failed to update product")
	}

	return err
}

func (repo *productRepository) readOne(ctx context.Context, criteria repository.Criteria) (*entity.Product, error) {
	product, err := repo.Read(ctx, criteria)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, repository.ErrProductNotFound
	}

	return product, err
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	product := &entity.Product{
		ArticleNumber:         data.ArticleNumber,
		Name:                  data.Name,
		SupplierArticleNumber: data.SupplierArticleNumber,
		Description:           data.Description,
		Price:                 data.Price,
		ImageURL:              data.ImageURL,
		CreatedAt:             data.CreatedAt,
		CategoryID:            data.CategoryID,
	}
	if data.Category != nil {
		product.Category = &entity.Category{
			ID:   data.Category.ID,
			Name: data.Category.Name,
		}
	}

	return product
}

// fromProductDomain leaves the association empty so writes never touch the
// categories table.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	categoryID := data.CategoryID
	if categoryID == 0 && data.Category != nil {
		categoryID = data.Category.ID
	}

	return &model.ProductModel{
		ArticleNumber:         data.ArticleNumber,
		Name:                  data.Name,
		SupplierArticleNumber: data.SupplierArticleNumber,
		Description:           data.Description,
		Price:                 data.Price,
		ImageURL:              data.ImageURL,
		CreatedAt:             data.CreatedAt,
		CategoryID:            categoryID,
	}
}
