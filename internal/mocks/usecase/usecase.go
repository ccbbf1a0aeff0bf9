// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"manero/internal/domain/entity"
	"manero/internal/usecase"

	"github.com/google/uuid"
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

func response[T any](args mock.Arguments) usecase.ServiceResponse[T] {
	if v, ok := args.Get(0).(usecase.ServiceResponse[T]); ok {
		return v
	}

	return usecase.ServiceResponse[T]{}
}

// MockUserUsecase mocks usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

func NewMockUserUsecase(t testingT) *MockUserUsecase {
	m := &MockUserUsecase{}
	register(t, m)

	return m
}

func (m *MockUserUsecase) Register(ctx context.Context, input *usecase.RegisterInput) usecase.ServiceResponse[*usecase.AuthOutput] {
	return response[*usecase.AuthOutput](m.MethodCalled("Register", ctx, input))
}

func (m *MockUserUsecase) CreateGoogleUser(ctx context.Context, input *usecase.OAuthRegisterInput) usecase.ServiceResponse[*usecase.AuthOutput] {
	return response[*usecase.AuthOutput](m.MethodCalled("CreateGoogleUser", ctx, input))
}

func (m *MockUserUsecase) GetUserByEmail(ctx context.Context, email string) usecase.ServiceResponse[*entity.User] {
	return response[*entity.User](m.MethodCalled("GetUserByEmail", ctx, email))
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, id uuid.UUID) usecase.ServiceResponse[*entity.User] {
	return response[*entity.User](m.MethodCalled("GetUserByID", ctx, id))
}

func (m *MockUserUsecase) GetAll(ctx context.Context) usecase.ServiceResponse[[]*entity.User] {
	return response[[]*entity.User](m.MethodCalled("GetAll", ctx))
}

func (m *MockUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) usecase.ServiceResponse[*usecase.LoginOutput] {
	return response[*usecase.LoginOutput](m.MethodCalled("Login", ctx, input))
}

// MockTokenUsecase mocks usecase.TokenUsecase.
type MockTokenUsecase struct {
	mock.Mock
}

func NewMockTokenUsecase(t testingT) *MockTokenUsecase {
	m := &MockTokenUsecase{}
	register(t, m)

	return m
}

func (m *MockTokenUsecase) GetToken(ctx context.Context, email, password string, rememberMe bool) usecase.ServiceResponse[*usecase.TokenOutput] {
	return response[*usecase.TokenOutput](m.MethodCalled("GetToken", ctx, email, password, rememberMe))
}

func (m *MockTokenUsecase) IssueTokenPair(ctx context.Context, user *entity.User, rememberMe bool) usecase.ServiceResponse[*usecase.TokenOutput] {
	return response[*usecase.TokenOutput](m.MethodCalled("IssueTokenPair", ctx, user, rememberMe))
}

func (m *MockTokenUsecase) RefreshToken(ctx context.Context, accessToken, refreshToken string) usecase.ServiceResponse[*usecase.TokenOutput] {
	return response[*usecase.TokenOutput](m.MethodCalled("RefreshToken", ctx, accessToken, refreshToken))
}

func (m *MockTokenUsecase) GetUserIDFromToken(ctx context.Context, accessToken string) usecase.ServiceResponse[uuid.UUID] {
	return response[uuid.UUID](m.MethodCalled("GetUserIDFromToken", ctx, accessToken))
}

func (m *MockTokenUsecase) RevokeToken(ctx context.Context, refreshToken string) usecase.ServiceResponse[struct{}] {
	return response[struct{}](m.MethodCalled("RevokeToken", ctx, refreshToken))
}

// MockExternalAuthUsecase mocks usecase.ExternalAuthUsecase.
type MockExternalAuthUsecase struct {
	mock.Mock
}

func NewMockExternalAuthUsecase(t testingT) *MockExternalAuthUsecase {
	m := &MockExternalAuthUsecase{}
	register(t, m)

	return m
}

func (m *MockExternalAuthUsecase) AuthenticateWithGoogle(ctx context.Context, code string) usecase.ServiceResponse[*usecase.AuthOutput] {
	return response[*usecase.AuthOutput](m.MethodCalled("AuthenticateWithGoogle", ctx, code))
}

func (m *MockExternalAuthUsecase) AuthenticateWithGoogleIDToken(ctx context.Context, idToken string) usecase.ServiceResponse[*usecase.AuthOutput] {
	return response[*usecase.AuthOutput](m.MethodCalled("AuthenticateWithGoogleIDToken", ctx, idToken))
}
