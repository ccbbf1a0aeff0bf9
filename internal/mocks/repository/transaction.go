package repository

import (
	"context"

	"manero/internal/domain/repository"
)

// MockRepositoryFactory hands out the mocks it holds. Unset fields return nil.
type MockRepositoryFactory struct {
	Users         *MockUserRepository
	RefreshTokens *MockRefreshTokenRepository
	Products      *MockProductRepository
	Categories    *MockCategoryRepository
}

func (f *MockRepositoryFactory) UserRepo() repository.UserRepository {
	if f.Users == nil {
		return nil
	}

	return f.Users
}

func (f *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	if f.RefreshTokens == nil {
		return nil
	}

	return f.RefreshTokens
}

func (f *MockRepositoryFactory) ProductRepo() repository.ProductRepository {
	if f.Products == nil {
		return nil
	}

	return f.Products
}

func (f *MockRepositoryFactory) CategoryRepo() repository.CategoryRepository {
	if f.Categories == nil {
		return nil
	}

	return f.Categories
}

// MockTransactionManager runs the callback directly against Factory and
// returns its error. Calls counts the transactions started.
type MockTransactionManager struct {
	Factory *MockRepositoryFactory
	Err     error // returned without running the callback when set
	Calls   int
}

// NewMockTransactionManager creates a transaction manager over factory.
func NewMockTransactionManager(factory *MockRepositoryFactory) *MockTransactionManager {
	return &MockTransactionManager{Factory: factory}
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}
