package impl

import (
	"context"
	"testing"

	"manero/internal/domain/entity"
	"manero/internal/domain/repository"
	"manero/internal/domain/service"
	"manero/internal/errors"
	mockRepo "manero/internal/mocks/repository"
	mockService "manero/internal/mocks/service"
	mockUsecase "manero/internal/mocks/usecase"
	"manero/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type externalAuthFixtures struct {
	service  usecase.ExternalAuthUsecase
	userRepo *mockRepo.MockUserRepository
	users    *mockUsecase.MockUserUsecase
	tokens   *mockUsecase.MockTokenUsecase
	oauth    *mockService.MockOAuthService
	idTokens *mockService.MockOAuthAuthService
}

func createTestExternalAuthService(t *testing.T) externalAuthFixtures {
	fx := externalAuthFixtures{
		userRepo: mockRepo.NewMockUserRepository(t),
		users:    mockUsecase.NewMockUserUsecase(t),
		tokens:   mockUsecase.NewMockTokenUsecase(t),
		oauth:    mockService.NewMockOAuthService(t),
		idTokens: mockService.NewMockOAuthAuthService(t),
	}
	fx.service = NewExternalAuthService(ExternalAuthServiceParams{
		UserRepo:     fx.userRepo,
		Users:        fx.users,
		Tokens:       fx.tokens,
		OAuthService: fx.oauth,
		IDTokens:     fx.idTokens,
		Logger:       discardLogger(),
	})

	return fx
}

func googleProfile() *service.OAuthUser {
	return &service.OAuthUser{
		ID:            "google-sub",
		Email:         "jane@gmail.com",
		EmailVerified: true,
		Name:          "Jane Doe",
		GivenName:     "Jane",
		FamilyName:    "Doe",
		Provider:      entity.ProviderTypeGoogle,
	}
}

func TestExternalAuthService_AuthenticateWithGoogle_ExistingUser(t *testing.T) {
	fx := createTestExternalAuthService(t)
	user := newTestUser()

	fx.oauth.On("ExchangeCode", mock.Anything, "auth-code").Return("google-access", nil)
	fx.oauth.On("GetUserInfo", mock.Anything, "google-access").Return(googleProfile(), nil)
	fx.userRepo.On("FindByEmail", mock.Anything, "jane@gmail.com").Return(user, nil)
	fx.tokens.On("IssueTokenPair", mock.Anything, user, false).Return(tokenPair(user))

	resp := fx.service.AuthenticateWithGoogle(context.Background(), "auth-code")

	require.Equal(t, usecase.StatusOk, resp.StatusCode, resp.Message)
	assert.Equal(t, user, resp.Content.User)
	assert.Equal(t, "access-token", resp.Content.AccessToken)
	fx.users.AssertNotCalled(t, "CreateGoogleUser", mock.Anything, mock.Anything)
}

func TestExternalAuthService_AuthenticateWithGoogle_NewUser(t *testing.T) {
	fx := createTestExternalAuthService(t)
	created := usecase.Created(&usecase.AuthOutput{User: newTestUser(), AccessToken: "access-token"})

	fx.oauth.On("ExchangeCode", mock.Anything, "auth-code").Return("google-access", nil)
	fx.oauth.On("GetUserInfo", mock.Anything, "google-access").Return(googleProfile(), nil)
	fx.userRepo.On("FindByEmail", mock.Anything, "jane@gmail.com").Return(nil, repository.ErrUserNotFound)
	fx.users.On("CreateGoogleUser", mock.Anything, &usecase.OAuthRegisterInput{
		Email:         "jane@gmail.com",
		OAuthID:       "google-sub",
		OAuthProvider: entity.ProviderTypeGoogle,
		FullName:      "Jane Doe",
		FirstName:     "Jane",
		LastName:      "Doe",
	}).Return(created)

	resp := fx.service.AuthenticateWithGoogle(context.Background(), "auth-code")

	assert.Equal(t, usecase.StatusCreated, resp.StatusCode)
	assert.Equal(t, "access-token", resp.Content.AccessToken)
}

func TestExternalAuthService_AuthenticateWithGoogle_Failures(t *testing.T) {
	t.Run("empty code", func(t *testing.T) {
		fx := createTestExternalAuthService(t)

		resp := fx.service.AuthenticateWithGoogle(context.Background(), " ")

		assert.Equal(t, usecase.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Failed to exchange authorization code.", resp.Message)
	})

	t.Run("exchange rejected", func(t *testing.T) {
		fx := createTestExternalAuthService(t)
		fx.oauth.On("ExchangeCode", mock.Anything, "stale").Return("", errors.New("invalid_grant"))

		resp := fx.service.AuthenticateWithGoogle(context.Background(), "stale")

		assert.Equal(t, usecase.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "OAUTH_CODE_INVALID", resp.ErrorCode)
	})

	t.Run("userinfo failure", func(t *testing.T) {
		fx := createTestExternalAuthService(t)
		fx.oauth.On("ExchangeCode", mock.Anything, "auth-code").Return("google-access", nil)
		fx.oauth.On("GetUserInfo", mock.Anything, "google-access").Return(nil, errors.New("502 from userinfo"))

		resp := fx.service.AuthenticateWithGoogle(context.Background(), "auth-code")

		assert.Equal(t, usecase.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "OAUTH_USERINFO_FAILED", resp.ErrorCode)
	})

	t.Run("profile without email", func(t *testing.T) {
		fx := createTestExternalAuthService(t)
		profile := googleProfile()
		profile.Email = ""
		fx.oauth.On("ExchangeCode", mock.Anything, "auth-code").Return("google-access", nil)
		fx.oauth.On("GetUserInfo", mock.Anything, "google-access").Return(profile, nil)

		resp := fx.service.AuthenticateWithGoogle(context.Background(), "auth-code")

		assert.Equal(t, usecase.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "OAUTH_EMAIL_MISSING", resp.ErrorCode)
	})

	t.Run("unverified email does not reach an existing account", func(t *testing.T) {
		fx := createTestExternalAuthService(t)
		profile := googleProfile()
		profile.Email = "jane@example.com"
		profile.EmailVerified = false
		fx.oauth.On("ExchangeCode", mock.Anything, "auth-code").Return("google-access", nil)
		fx.oauth.On("GetUserInfo", mock.Anything, "google-access").Return(profile, nil)

		resp := fx.service.AuthenticateWithGoogle(context.Background(), "auth-code")

		assert.Equal(t, usecase.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "OAUTH_EMAIL_UNVERIFIED", resp.ErrorCode)
		assert.Nil(t, resp.Content)
		fx.userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		fx.tokens.AssertNotCalled(t, "IssueTokenPair", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExternalAuthService_AuthenticateWithGoogleIDToken(t *testing.T) {
	t.Run("disabled account", func(t *testing.T) {
		fx := createTestExternalAuthService(t)
		user := newTestUser()
		user.SignIn.LoginDisabled = true

		fx.idTokens.On("VerifyIDToken", mock.Anything, "id-token").Return(googleProfile(), nil)
		fx.userRepo.On("FindByEmail", mock.Anything, "jane@gmail.com").Return(user, nil)

		resp := fx.service.AuthenticateWithGoogleIDToken(context.Background(), "id-token")

		assert.Equal(t, usecase.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "User is not allowed to login.", resp.Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		fx := createTestExternalAuthService(t)
		fx.idTokens.On("VerifyIDToken", mock.Anything, "forged").Return(nil, errors.New("audience mismatch"))

		resp := fx.service.AuthenticateWithGoogleIDToken(context.Background(), "forged")

		assert.Equal(t, usecase.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid ID token.", resp.Message)
	})
}
