package usecase

import (
	"context"

	"manero/internal/domain/entity"
	"manero/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockProductUsecase mocks usecase.ProductUsecase.
type MockProductUsecase struct {
	mock.Mock
}

func NewMockProductUsecase(t testingT) *MockProductUsecase {
	m := &MockProductUsecase{}
	register(t, m)

	return m
}

func (m *MockProductUsecase) Create(ctx context.Context, input *usecase.ProductInput) usecase.ServiceResponse[*entity.Product] {
	return response[*entity.Product](m.MethodCalled("Create", ctx, input))
}

func (m *MockProductUsecase) GetAll(ctx context.Context) usecase.ServiceResponse[[]*entity.Product] {
	return response[[]*entity.Product](m.MethodCalled("GetAll", ctx))
}

func (m *MockProductUsecase) GetByArticleNumber(ctx context.Context, articleNumber int64) usecase.ServiceResponse[*entity.Product] {
	return response[*entity.Product](m.MethodCalled("GetByArticleNumber", ctx, articleNumber))
}

func (m *MockProductUsecase) Update(ctx context.Context, articleNumber int64, input *usecase.ProductInput) usecase.ServiceResponse[*entity.Product] {
	return response[*entity.Product](m.MethodCalled("Update", ctx, articleNumber, input))
}

func (m *MockProductUsecase) Delete(ctx context.Context, articleNumber int64) usecase.ServiceResponse[struct{}] {
	return response[struct{}](m.MethodCalled("Delete", ctx, articleNumber))
}

func (m *MockProductUsecase) Search(ctx context.Context, term string) usecase.ServiceResponse[*usecase.SearchResult] {
	return response[*usecase.SearchResult](m.MethodCalled("Search", ctx, term))
}

func (m *MockProductUsecase) SearchByName(ctx context.Context, name string) usecase.ServiceResponse[[]*entity.Product] {
	return response[[]*entity.Product](m.MethodCalled("SearchByName", ctx, name))
}

func (m *MockProductUsecase) FilterByPrice(ctx context.Context, minPrice, maxPrice decimal.Decimal) usecase.ServiceResponse[[]*entity.Product] {
	return response[[]*entity.Product](m.MethodCalled("FilterByPrice", ctx, minPrice, maxPrice))
}

func (m *MockProductUsecase) QRCode(ctx context.Context, articleNumber int64) usecase.ServiceResponse[[]byte] {
	return response[[]byte](m.MethodCalled("QRCode", ctx, articleNumber))
}

func (m *MockProductUsecase) UploadImage(ctx context.Context, articleNumber int64, upload *usecase.ImageUpload) usecase.ServiceResponse[*entity.Product] {
	return response[*entity.Product](m.MethodCalled("UploadImage", ctx, articleNumber, upload))
}

// MockCategoryUsecase mocks usecase.CategoryUsecase.
type MockCategoryUsecase struct {
	mock.Mock
}

func NewMockCategoryUsecase(t testingT) *MockCategoryUsecase {
	m := &MockCategoryUsecase{}
	register(t, m)

	return m
}

func (m *MockCategoryUsecase) Create(ctx context.Context, input *usecase.CategoryInput) usecase.ServiceResponse[*entity.Category] {
	return response[*entity.Category](m.MethodCalled("Create", ctx, input))
}

func (m *MockCategoryUsecase) GetAll(ctx context.Context) usecase.ServiceResponse[[]*entity.Category] {
	return response[[]*entity.Category](m.MethodCalled("GetAll", ctx))
}

func (m *MockCategoryUsecase) GetByID(ctx context.Context, id int64) usecase.ServiceResponse[*entity.Category] {
	return response[*entity.Category](m.MethodCalled("GetByID", ctx, id))
}

func (m *MockCategoryUsecase) GetProductsByCategory(ctx context.Context, categoryID int64) usecase.ServiceResponse[[]*entity.Product] {
	return response[[]*entity.Product](m.MethodCalled("GetProductsByCategory", ctx, categoryID))
}

func (m *MockCategoryUsecase) Search(ctx context.Context, term string) usecase.ServiceResponse[*entity.Category] {
	return response[*entity.Category](m.MethodCalled("Search", ctx, term))
}

// MockLabelUsecase mocks usecase.LabelUsecase.
type MockLabelUsecase struct {
	mock.Mock
}

func NewMockLabelUsecase(t testingT) *MockLabelUsecase {
	m := &MockLabelUsecase{}
	register(t, m)

	return m
}

func (m *MockLabelUsecase) HandleEvent(ctx context.Context, event *entity.Event) error {
	return m.MethodCalled("HandleEvent", ctx, event).Error(0)
}
