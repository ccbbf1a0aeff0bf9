package repository

import (
	"context"
	"time"

	"manero/internal/domain/entity"

	"github.com/google/uuid"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	baseRepository[entity.User]
}

// NewMockUserRepository creates a mock whose expectations are asserted on cleanup.
func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	register(t, m)

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	ret := m.MethodCalled("FindByID", ctx, id)

	return value[*entity.User](ret, 0), ret.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ret := m.MethodCalled("FindByEmail", ctx, email)

	return value[*entity.User](ret, 0), ret.Error(1)
}

func (m *MockUserRepository) RecordFailedSignIn(ctx context.Context, id uuid.UUID, maxAttempts int, lockoutEnd time.Time) error {
	return m.MethodCalled("RecordFailedSignIn", ctx, id, maxAttempts, lockoutEnd).Error(0)
}

func (m *MockUserRepository) ResetFailedSignIn(ctx context.Context, id uuid.UUID) error {
	return m.MethodCalled("ResetFailedSignIn", ctx, id).Error(0)
}
