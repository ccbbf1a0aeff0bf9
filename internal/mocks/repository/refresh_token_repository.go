package repository

import (
	"context"

	"manero/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

// NewMockRefreshTokenRepository creates a mock whose expectations are asserted on cleanup.
func NewMockRefreshTokenRepository(t testingT) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	register(t, m)

	return m
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.MethodCalled("CreateRefreshToken", ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	ret := m.MethodCalled("FindRefreshTokenByHash", ctx, tokenHash)

	return value[*entity.RefreshToken](ret, 0), ret.Error(1)
}

func (m *MockRefreshTokenRepository) FindActiveRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) (*entity.RefreshToken, error) {
	ret := m.MethodCalled("FindActiveRefreshToken", ctx, userID, tokenHash)

	return value[*entity.RefreshToken](ret, 0), ret.Error(1)
}

func (m *MockRefreshTokenRepository) FindActiveRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	ret := m.MethodCalled("FindActiveRefreshTokensByUserID", ctx, userID)

	return value[[]*entity.RefreshToken](ret, 0), ret.Error(1)
}

func (m *MockRefreshTokenRepository) RevokeRefreshToken(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID) error {
	return m.MethodCalled("RevokeRefreshToken", ctx, id, replacedBy).Error(0)
}

func (m *MockRefreshTokenRepository) RevokeRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.MethodCalled("RevokeRefreshTokensByUserID", ctx, userID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return m.MethodCalled("DeleteExpiredRefreshTokens", ctx, userID).Error(0)
}

func (m *MockRefreshTokenRepository) CountActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	ret := m.MethodCalled("CountActiveSessionsByUserID", ctx, userID)

	return value[int](ret, 0), ret.Error(1)
}
