package impl

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"manero/config"
	deliverycontext "manero/internal/delivery/context"
	"manero/internal/domain/entity"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/domain/repository"
	"manero/internal/domain/service"
	"manero/internal/errors"
	"manero/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const defaultMaxImageSize = 5 << 20

// imageExtensions lists the accepted image types by sniffed content type.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// productService implements the ProductUsecase interface.
type productService struct {
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	publisher    service.EventPublisher
	qrCodes      service.QRCodeService
	images       service.ImageStore
	maxImageSize int64
	logger       *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	Publisher    service.EventPublisher
	QRCodes      service.QRCodeService
	Images       service.ImageStore
	Config       *config.Config
	Logger       *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	maxImageSize := int64(defaultMaxImageSize)
	if params.Config != nil && params.Config.Storage != nil && params.Config.Storage.MaxImageSize > 0 {
		maxImageSize = params.Config.Storage.MaxImageSize
	}

	return &productService{
		txManager:    params.TxManager,
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		publisher:    params.Publisher,
		qrCodes:      params.QRCodes,
		images:       params.Images,
		maxImageSize: maxImageSize,
		logger:       params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores a product, creating its category by name when needed. Both
// writes share one transaction.
func (srv *productService) Create(ctx context.Context, input *usecase.ProductInput) usecase.ServiceResponse[*entity.Product] {
	return guard(ctx, srv.log(ctx), "CreateProduct", func() (usecase.ServiceResponse[*entity.Product], error) {
		if err := validateProductInput(input); err != nil {
			return usecase.ServiceResponse[*entity.Product]{}, err
		}

		product := &entity.Product{
			Name:                  strings.TrimSpace(input.Name),
			SupplierArticleNumber: input.SupplierArticleNumber,
			Description:           input.Description,
			Price:                 input.Price,
			ImageURL:              input.ImageURL,
		}

		var createdCategory *entity.Category
		err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			productRepo := repoFactory.ProductRepo()

			exists, err := productRepo.Exists(ctx, repository.Where(repository.ProductFieldName, product.Name))
			if err != nil {
				return errors.Wrap(err, "failed to check product existence")
			}
			if exists {
				return domainerrors.ErrProductAlreadyExists
			}

			category, created, err := resolveCategory(ctx, repoFactory.CategoryRepo(), input.CategoryName)
			if err != nil {
				return err
			}
			if created {
				createdCategory = category
			}
			product.CategoryID = category.ID
			product.Category = category

			if err := productRepo.Create(ctx, product); err != nil {
				if errors.Is(err, domainerrors.ErrConflict) {
					return domainerrors.ErrProductAlreadyExists
				}

				return errors.Wrap(err, "failed to create product")
			}

			return nil
		})
		if err != nil {
			return usecase.ServiceResponse[*entity.Product]{}, err
		}

		srv.log(ctx).Info("Product created", slog.Int64("articleNumber", product.ArticleNumber))

		if createdCategory != nil {
			publish(ctx, srv.publisher, srv.log(ctx), categoryEvent(createdCategory))
		}
		publish(ctx, srv.publisher, srv.log(ctx), productEvent(entity.EventProductCreated, product))

		return usecase.Created(product), nil
	})
}

func (srv *productService) GetAll(ctx context.Context) usecase.ServiceResponse[[]*entity.Product] {
	return guard(ctx, srv.log(ctx), "GetAllProducts", func() (usecase.ServiceResponse[[]*entity.Product], error) {
		products, err := srv.productRepo.ReadAll(ctx, nil)
		if err != nil {
			return usecase.ServiceResponse[[]*entity.Product]{}, errors.Wrap(err, "failed to list products")
		}

		return usecase.Ok(products), nil
	})
}

func (srv *productService) GetByArticleNumber(ctx context.Context, articleNumber int64) usecase.ServiceResponse[*entity.Product] {
	return guard(ctx, srv.log(ctx), "GetProduct", func() (usecase.ServiceResponse[*entity.Product], error) {
		product, err := srv.findProduct(ctx, srv.productRepo, articleNumber)
		if err != nil {
			return usecase.ServiceResponse[*entity.Product]{}, err
		}

		return usecase.Ok(product), nil
	})
}

// Update replaces the writable fields of a product. Renaming onto another
// product's name is a conflict.
func (srv *productService) Update(ctx context.Context, articleNumber int64, input *usecase.ProductInput) usecase.ServiceResponse[*entity.Product] {
	return guard(ctx, srv.log(ctx), "UpdateProduct", func() (usecase.ServiceResponse[*entity.Product], error) {
		if err := validateProductInput(input); err != nil {
			return usecase.ServiceResponse[*entity.Product]{}, err
		}

		var (
			product         *entity.Product
			createdCategory *entity.Category
		)
		err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			productRepo := repoFactory.ProductRepo()

			existing, err := srv.findProduct(ctx, productRepo, articleNumber)
			if err != nil {
				return err
			}

			name := strings.TrimSpace(input.Name)
			if name != existing.Name {
				other, err := productRepo.FindByName(ctx, name)
				if err == nil && other.ArticleNumber != articleNumber {
					return domainerrors.ErrProductAlreadyExists
				}
				if err != nil && !errors.Is(err, repository.ErrProductNotFound) {
					return errors.Wrap(err, "failed to check product name")
				}
			}

			category, created, err := resolveCategory(ctx, repoFactory.CategoryRepo(), input.CategoryName)
			if err != nil {
				return err
			}
			if created {
				createdCategory = category
			}

			existing.Name = name
			existing.SupplierArticleNumber = input.SupplierArticleNumber
			existing.Description = input.Description
			existing.Price = input.Price
			existing.ImageURL = input.ImageURL
			existing.CategoryID = category.ID
			existing.Category = category

			if err := productRepo.Update(ctx, existing); err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound
				}

				return errors.Wrap(err, "failed to update product")
			}
			product = existing

			return nil
		})
		if err != nil {
			return usecase.ServiceResponse[*entity.Product]{}, err
		}

		if createdCategory != nil {
			publish(ctx, srv.publisher, srv.log(ctx), categoryEvent(createdCategory))
		}
		publish(ctx, srv.publisher, srv.log(ctx), productEvent(entity.EventProductUpdated, product))

		return usecase.Ok(product), nil
	})
}

func (srv *productService) Delete(ctx context.Context, articleNumber int64) usecase.ServiceResponse[struct{}] {
	return guard(ctx, srv.log(ctx), "DeleteProduct", func() (usecase.ServiceResponse[struct{}], error) {
		deleted, err := srv.productRepo.Delete(ctx, repository.Where(repository.ProductFieldArticleNumber, articleNumber))
		if err != nil {
			return usecase.ServiceResponse[struct{}]{}, errors.Wrap(err, "failed to delete product")
		}
		if !deleted {
			return usecase.ServiceResponse[struct{}]{}, domainerrors.ErrProductNotFound
		}

		publish(ctx, srv.publisher, srv.log(ctx), entity.NewEvent(entity.EventProductDeleted, formatArticleNumber(articleNumber), nil))

		return usecase.NoContent[struct{}](), nil
	})
}

// Search looks for a product and a category whose names contain term. The
// two lookups are independent.
func (srv *productService) Search(ctx context.Context, term string) usecase.ServiceResponse[*usecase.SearchResult] {
	return guard(ctx, srv.log(ctx), "SearchCatalog", func() (usecase.ServiceResponse[*usecase.SearchResult], error) {
		term = strings.TrimSpace(term)
		if term == "" {
			return usecase.ServiceResponse[*usecase.SearchResult]{}, errEmptySearchTerm
		}

		result := &usecase.SearchResult{}

		product, err := srv.productRepo.SearchByName(ctx, term)
		switch {
		case err == nil:
			result.Product = product
		case !errors.Is(err, repository.ErrProductNotFound):
			return usecase.ServiceResponse[*usecase.SearchResult]{}, errors.Wrap(err, "failed to search products")
		}

		category, err := srv.categoryRepo.SearchByName(ctx, term)
		switch {
		case err == nil:
			result.Category = category
		case !errors.Is(err, repository.ErrCategoryNotFound):
			return usecase.ServiceResponse[*usecase.SearchResult]{}, errors.Wrap(err, "failed to search categories")
		}

		if result.Product == nil && result.Category == nil {
			return usecase.ServiceResponse[*usecase.SearchResult]{}, domainerrors.ErrSearchNoMatch
		}

		return usecase.Ok(result), nil
	})
}

func (srv *productService) SearchByName(ctx context.Context, name string) usecase.ServiceResponse[[]*entity.Product] {
	return guard(ctx, srv.log(ctx), "SearchProductsByName", func() (usecase.ServiceResponse[[]*entity.Product], error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return usecase.ServiceResponse[[]*entity.Product]{}, errEmptySearchTerm
		}

		products, err := srv.productRepo.ListByNameContains(ctx, name)
		if err != nil {
			return usecase.ServiceResponse[[]*entity.Product]{}, errors.Wrap(err, "failed to search products")
		}

		return usecase.Ok(products), nil
	})
}

// FilterByPrice returns products with minPrice <= price <= maxPrice.
func (srv *productService) FilterByPrice(ctx context.Context, minPrice, maxPrice decimal.Decimal) usecase.ServiceResponse[[]*entity.Product] {
	return guard(ctx, srv.log(ctx), "FilterProductsByPrice", func() (usecase.ServiceResponse[[]*entity.Product], error) {
		if minPrice.IsNegative() || maxPrice.IsNegative() || minPrice.GreaterThan(maxPrice) {
			return usecase.ServiceResponse[[]*entity.Product]{}, domainerrors.ErrInvalidPriceRange
		}

		products, err := srv.productRepo.FindByPriceRange(ctx, minPrice, maxPrice)
		if err != nil {
			return usecase.ServiceResponse[[]*entity.Product]{}, errors.Wrap(err, "failed to filter products by price")
		}

		return usecase.Ok(products), nil
	})
}

// QRCode renders a QR code that links to the product page.
func (srv *productService) QRCode(ctx context.Context, articleNumber int64) usecase.ServiceResponse[[]byte] {
	return guard(ctx, srv.log(ctx), "ProductQRCode", func() (usecase.ServiceResponse[[]byte], error) {
		if _, err := srv.findProduct(ctx, srv.productRepo, articleNumber); err != nil {
			return usecase.ServiceResponse[[]byte]{}, err
		}

		png, err := srv.qrCodes.GenerateProductQR(articleNumber)
		if err != nil {
			return usecase.ServiceResponse[[]byte]{}, errors.Wrap(err, "failed to generate QR code")
		}

		return usecase.Ok(png), nil
	})
}

// UploadImage stores a product image and points the product at it. The type
// is sniffed from the content; the declared type is not trusted.
func (srv *productService) UploadImage(ctx context.Context, articleNumber int64, upload *usecase.ImageUpload) usecase.ServiceResponse[*entity.Product] {
	return guard(ctx, srv.log(ctx), "UploadProductImage", func() (usecase.ServiceResponse[*entity.Product], error) {
		if upload == nil || upload.Body == nil {
			return usecase.ServiceResponse[*entity.Product]{}, domainerrors.ErrNullContent
		}

		data, err := io.ReadAll(io.LimitReader(upload.Body, srv.maxImageSize+1))
		if err != nil {
			return usecase.ServiceResponse[*entity.Product]{}, errors.Wrap(err, "failed to read image")
		}
		if len(data) == 0 || int64(len(data)) > srv.maxImageSize {
			return usecase.ServiceResponse[*entity.Product]{}, domainerrors.ErrImageRejected
		}

		contentType := http.DetectContentType(data)
		ext, ok := imageExtensions[contentType]
		if !ok {
			return usecase.ServiceResponse[*entity.Product]{}, domainerrors.ErrImageRejected.WithDetails(contentType)
		}

		product, err := srv.findProduct(ctx, srv.productRepo, articleNumber)
		if err != nil {
			return usecase.ServiceResponse[*entity.Product]{}, err
		}

		url, err := srv.images.Put(ctx, "products/"+formatArticleNumber(articleNumber)+ext, contentType, data)
		if err != nil {
			return usecase.ServiceResponse[*entity.Product]{}, errors.Wrap(err, "failed to store image")
		}

		product.ImageURL = url
		if err := srv.productRepo.Update(ctx, product); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return usecase.ServiceResponse[*entity.Product]{}, domainerrors.ErrProductNotFound
			}

			return usecase.ServiceResponse[*entity.Product]{}, errors.Wrap(err, "failed to update product image")
		}

		publish(ctx, srv.publisher, srv.log(ctx), productEvent(entity.EventProductUpdated, product))

		return usecase.Ok(product), nil
	})
}

func (srv *productService) findProduct(ctx context.Context, repo repository.ProductRepository, articleNumber int64) (*entity.Product, error) {
	product, err := repo.FindByArticleNumber(ctx, articleNumber)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// resolveCategory finds a category by name, creating it when absent.
func resolveCategory(ctx context.Context, repo repository.CategoryRepository, name string) (*entity.Category, bool, error) {
	name = strings.TrimSpace(name)

	category, err := repo.FindByName(ctx, name)
	if err == nil {
		return category, false, nil
	}
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, false, errors.Wrap(err, "failed to find category")
	}

	category = &entity.Category{Name: name}
	if err := repo.Create(ctx, category); err != nil {
		return nil, false, errors.Wrap(err, "failed to create category")
	}

	return category, true, nil
}

func validateProductInput(input *usecase.ProductInput) error {
	if input == nil {
		return domainerrors.ErrNullContent
	}
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.ErrValidationFailed.WithMessage("Product name is required.")
	}
	if strings.TrimSpace(input.CategoryName) == "" {
		return domainerrors.ErrValidationFailed.WithMessage("Category name is required.")
	}
	if input.Price.IsNegative() {
		return domainerrors.ErrValidationFailed.WithMessage("Price cannot be negative.")
	}

	return nil
}

var errEmptySearchTerm = domainerrors.ErrValidationFailed.WithMessage("Search term cannot be empty.")

func formatArticleNumber(articleNumber int64) string {
	return strconv.FormatInt(articleNumber, 10)
}

func productEvent(eventType entity.EventType, product *entity.Product) *entity.Event {
	payload := map[string]any{
		"name":       product.Name,
		"price":      product.Price.String(),
		"categoryId": product.CategoryID,
	}

	return entity.NewEvent(eventType, formatArticleNumber(product.ArticleNumber), payload)
}

func categoryEvent(category *entity.Category) *entity.Event {
	return entity.NewEvent(entity.EventCategoryCreated, strconv.FormatInt(category.ID, 10), map[string]any{
		"name": category.Name,
	})
}
