package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "manero/internal/delivery/context"
	"manero/internal/domain/entity"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/domain/repository"
	"manero/internal/domain/service"
	"manero/internal/errors"
	"manero/internal/usecase"

	"go.uber.org/fx"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: params.CategoryRepo,
		productRepo:  params.ProductRepo,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) Create(ctx context.Context, input *usecase.CategoryInput) usecase.ServiceResponse[*entity.Category] {
	return guard(ctx, srv.log(ctx), "CreateCategory", func() (usecase.ServiceResponse[*entity.Category], error) {
		if input == nil {
			return usecase.ServiceResponse[*entity.Category]{}, domainerrors.ErrNullContent
		}
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return usecase.ServiceResponse[*entity.Category]{}, domainerrors.ErrValidationFailed.WithMessage("Category name is required.")
		}

		exists, err := srv.categoryRepo.Exists(ctx, repository.Where(repository.CategoryFieldName, name))
		if err != nil {
			return usecase.ServiceResponse[*entity.Category]{}, errors.Wrap(err, "failed to check category existence")
		}
		if exists {
			return usecase.ServiceResponse[*entity.Category]{}, domainerrors.ErrCategoryAlreadyExists
		}

		category := &entity.Category{Name: name}
		if err := srv.categoryRepo.Create(ctx, category); err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				return usecase.ServiceResponse[*entity.Category]{}, domainerrors.ErrCategoryAlreadyExists
			}

			return usecase.ServiceResponse[*entity.Category]{}, errors.Wrap(err, "failed to create category")
		}

		publish(ctx, srv.publisher, srv.log(ctx), categoryEvent(category))

		return usecase.Created(category), nil
	})
}

func (srv *categoryService) GetAll(ctx context.Context) usecase.ServiceResponse[[]*entity.Category] {
	return guard(ctx, srv.log(ctx), "GetAllCategories", func() (usecase.ServiceResponse[[]*entity.Category], error) {
		categories, err := srv.categoryRepo.ReadAll(ctx, nil)
		if err != nil {
			return usecase.ServiceResponse[[]*entity.Category]{}, errors.Wrap(err, "failed to list categories")
		}

		return usecase.Ok(categories), nil
	})
}

func (srv *categoryService) GetByID(ctx context.Context, id int64) usecase.ServiceResponse[*entity.Category] {
	return guard(ctx, srv.log(ctx), "GetCategory", func() (usecase.ServiceResponse[*entity.Category], error) {
		category, err := srv.categoryRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return usecase.ServiceResponse[*entity.Category]{}, domainerrors.ErrCategoryNotFound
		}
		if err != nil {
			return usecase.ServiceResponse[*entity.Category]{}, errors.Wrap(err, "failed to find category")
		}

		return usecase.Ok(category), nil
	})
}

// GetProductsByCategory lists a category's products. An empty list is NotFound.
func (srv *categoryService) GetProductsByCategory(ctx context.Context, categoryID int64) usecase.ServiceResponse[[]*entity.Product] {
	return guard(ctx, srv.log(ctx), "GetProductsByCategory", func() (usecase.ServiceResponse[[]*entity.Product], error) {
		products, err := srv.productRepo.ListByCategoryID(ctx, categoryID)
		if err != nil {
			return usecase.ServiceResponse[[]*entity.Product]{}, errors.Wrap(err, "failed to list products by category")
		}
		if len(products) == 0 {
			return usecase.ServiceResponse[[]*entity.Product]{}, domainerrors.ErrNoProductsInCategory
		}

		return usecase.Ok(products), nil
	})
}

func (srv *categoryService) Search(ctx context.Context, term string) usecase.ServiceResponse[*entity.Category] {
	return guard(ctx, srv.log(ctx), "SearchCategories", func() (usecase.ServiceResponse[*entity.Category], error) {
		term = strings.TrimSpace(term)
		if term == "" {
			return usecase.ServiceResponse[*entity.Category]{}, errEmptySearchTerm
		}

		category, err := srv.categoryRepo.SearchByName(ctx, term)
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return usecase.ServiceResponse[*entity.Category]{}, domainerrors.ErrCategoryNotFound
		}
		if err != nil {
			return usecase.ServiceResponse[*entity.Category]{}, errors.Wrap(err, "failed to search categories")
		}

		return usecase.Ok(category), nil
	})
}
