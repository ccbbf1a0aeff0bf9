// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"
	"time"

	"manero/internal/domain/entity"
	"manero/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type expecter interface {
	Test(t mock.TestingT)
	AssertExpectations(t mock.TestingT) bool
}

func register(t testingT, m expecter) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func value[T any](args mock.Arguments, index int) T {
	var zero T
	if v, ok := args.Get(index).(T); ok {
		return v
	}

	return zero
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t testingT) *MockTokenService {
	m := &MockTokenService{}
	register(t, m)

	return m
}

func (m *MockTokenService) GenerateAccessToken(user *entity.User) (string, time.Time, error) {
	ret := m.MethodCalled("GenerateAccessToken", user)

	return ret.String(0), value[time.Time](ret, 1), ret.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken() (string, error) {
	ret := m.MethodCalled("GenerateRefreshToken")

	return ret.String(0), ret.Error(1)
}

func (m *MockTokenService) ParseAccessToken(tokenString string, validateLifetime bool) (*service.Claims, error) {
	ret := m.MethodCalled("ParseAccessToken", tokenString, validateLifetime)

	return value[*service.Claims](ret, 0), ret.Error(1)
}

func (m *MockTokenService) HashToken(token string) string {
	return m.MethodCalled("HashToken", token).String(0)
}

func (m *MockTokenService) RefreshTokenDuration(rememberMe bool) time.Duration {
	return value[time.Duration](m.MethodCalled("RefreshTokenDuration", rememberMe), 0)
}

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	register(t, m)

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := m.MethodCalled("Hash", password)

	return ret.String(0), ret.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.MethodCalled("Check", password, hash).Bool(0)
}

// MockOAuthService mocks service.OAuthService.
type MockOAuthService struct {
	mock.Mock
}

func NewMockOAuthService(t testingT) *MockOAuthService {
	m := &MockOAuthService{}
	register(t, m)

	return m
}

func (m *MockOAuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	ret := m.MethodCalled("ExchangeCode", ctx, code)

	return ret.String(0), ret.Error(1)
}

func (m *MockOAuthService) GetUserInfo(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	ret := m.MethodCalled("GetUserInfo", ctx, accessToken)

	return value[*service.OAuthUser](ret, 0), ret.Error(1)
}

func (m *MockOAuthService) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// MockOAuthAuthService mocks service.OAuthAuthService.
type MockOAuthAuthService struct {
	mock.Mock
}

func NewMockOAuthAuthService(t testingT) *MockOAuthAuthService {
	m := &MockOAuthAuthService{}
	register(t, m)

	return m
}

func (m *MockOAuthAuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	ret := m.MethodCalled("VerifyIDToken", ctx, idToken)

	return value[*service.OAuthUser](ret, 0), ret.Error(1)
}

func (m *MockOAuthAuthService) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}
