package repository

import (
	"context"

	"manero/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// MockProductRepository mocks repository.ProductRepository.
type MockProductRepository struct {
	baseRepository[entity.Product]
}

// NewMockProductRepository creates a mock whose expectations are asserted on cleanup.
func NewMockProductRepository(t testingT) *MockProductRepository {
	m := &MockProductRepository{}
	register(t, m)

	return m
}

func (m *MockProductRepository) FindByArticleNumber(ctx context.Context, articleNumber int64) (*entity.Product, error) {
	ret := m.MethodCalled("FindByArticleNumber", ctx, articleNumber)

	return value[*entity.Product](ret, 0), ret.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*entity.Product, error) {
	ret := m.MethodCalled("FindByName", ctx, name)

	return value[*entity.Product](ret, 0), ret.Error(1)
}

func (m *MockProductRepository) SearchByName(ctx context.Context, term string) (*entity.Product, error) {
	ret := m.MethodCalled("SearchByName", ctx, term)

	return value[*entity.Product](ret, 0), ret.Error(1)
}

func (m *MockProductRepository) ListByNameContains(ctx context.Context, term string) ([]*entity.Product, error) {
	ret := m.MethodCalled("ListByNameContains", ctx, term)

	return value[[]*entity.Product](ret, 0), ret.Error(1)
}

func (m *MockProductRepository) FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]*entity.Product, error) {
	ret := m.MethodCalled("FindByPriceRange", ctx, minPrice, maxPrice)

	return value[[]*entity.Product](ret, 0), ret.Error(1)
}

func (m *MockProductRepository) ListByCategoryID(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	ret := m.MethodCalled("ListByCategoryID", ctx, categoryID)

	return value[[]*entity.Product](ret, 0), ret.Error(1)
}

// MockCategoryRepository mocks repository.CategoryRepository.
type MockCategoryRepository struct {
	baseRepository[entity.Category]
}

// NewMockCategoryRepository creates a mock whose expectations are asserted on cleanup.
func NewMockCategoryRepository(t testingT) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	register(t, m)

	return m
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	ret := m.MethodCalled("FindByID", ctx, id)

	return value[*entity.Category](ret, 0), ret.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	ret := m.MethodCalled("FindByName", ctx, name)

	return value[*entity.Category](ret, 0), ret.Error(1)
}

func (m *MockCategoryRepository) SearchByName(ctx context.Context, term string) (*entity.Category, error) {
	ret := m.MethodCalled("SearchByName", ctx, term)

	return value[*entity.Category](ret, 0), ret.Error(1)
}
