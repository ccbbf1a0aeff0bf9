package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"manero/config"
	"manero/internal/domain/entity"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/domain/repository"
	"manero/internal/domain/service"
	"manero/internal/errors"
	mockRepo "manero/internal/mocks/repository"
	mockService "manero/internal/mocks/service"
	"manero/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tokenServiceFixtures holds all test dependencies for token service tests.
type tokenServiceFixtures struct {
	service       *tokenService
	txManager     *mockRepo.MockTransactionManager
	userRepo      *mockRepo.MockUserRepository
	refreshTokens *mockRepo.MockRefreshTokenRepository
	hasher        *mockService.MockPasswordHasher
	tokens        *mockService.MockTokenService
}

func createTestTokenService(t *testing.T, auth *config.AuthConfig) tokenServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	refreshTokens := mockRepo.NewMockRefreshTokenRepository(t)
	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		Users:         userRepo,
		RefreshTokens: refreshTokens,
	})
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockService.NewMockTokenService(t)

	srv := NewTokenService(TokenServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokens,
		Hasher:           hasher,
		TokenService:     tokens,
		Config:           &config.Config{Auth: auth},
		Logger:           discardLogger(),
	}).(*tokenService)
	srv.now = func() time.Time { return testNow }

	return tokenServiceFixtures{
		service:       srv,
		txManager:     txManager,
		userRepo:      userRepo,
		refreshTokens: refreshTokens,
		hasher:        hasher,
		tokens:        tokens,
	}
}

func defaultAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{MaxFailedAttempts: 3, LockoutDuration: 15 * time.Minute}
}

func newTestUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		FullName:     "Jane Doe",
		PasswordHash: "hash",
	}
}

// expectIssue sets up the calls made when a token pair is minted and stored.
func (fx tokenServiceFixtures) expectIssue(user *entity.User, rememberMe bool) {
	fx.tokens.On("GenerateAccessToken", user).Return("access-token", testNow.Add(time.Hour), nil).Once()
	fx.tokens.On("GenerateRefreshToken").Return("refresh-token", nil).Once()
	fx.tokens.On("HashToken", "refresh-token").Return("refresh-hash").Once()
	fx.tokens.On("RefreshTokenDuration", rememberMe).Return(7 * 24 * time.Hour).Once()
}

func TestTokenService_GetToken_UnknownEmail(t *testing.T) {
	fx := createTestTokenService(t, defaultAuthConfig())
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	resp := fx.service.GetToken(ctx, "nobody@example.com", "secret", false)

	assert.Equal(t, usecase.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "User not found", resp.Message)
	assert.Nil(t, resp.Content)
}

func TestTokenService_GetToken_WrongPasswordRecordsFailure(t *testing.T) {
	fx := createTestTokenService(t, defaultAuthConfig())
	ctx := context.Background()
	user := newTestUser()

	fx.userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	fx.hasher.On("Check", "wrong", "hash").Return(false)
	fx.userRepo.On("RecordFailedSignIn", mock.Anything, user.ID, 3, testNow.Add(15*time.Minute)).Return(nil)

	resp := fx.service.GetToken(ctx, user.Email, "wrong", false)

	assert.Equal(t, usecase.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid login attempt.", resp.Message)
	assert.Equal(t, 0, fx.txManager.Calls)
}

func TestTokenService_GetToken_AccountPolicy(t *testing.T) {
	future := testNow.Add(time.Minute)
	past := testNow.Add(-time.Minute)

	tests := []struct {
		name          string
		signIn        entity.SignInState
		checkPassword bool
		wantMessage   string
	}{
		{
			name:        "disabled account",
			signIn:      entity.SignInState{LoginDisabled: true},
			wantMessage: "User is not allowed to login.",
		},
		{
			name:        "locked out",
			signIn:      entity.SignInState{AccessFailedCount: 3, LockoutEnd: &future},
			wantMessage: "User account is locked out.",
		},
		{
			name:          "two factor enabled",
			signIn:        entity.SignInState{TwoFactorEnabled: true, LockoutEnd: &past},
			checkPassword: true,
			wantMessage:   "Login requires two-factor authentication.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestTokenService(t, defaultAuthConfig())
			user := newTestUser()
			user.SignIn = tt.signIn

			fx.userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
			if tt.checkPassword {
				fx.hasher.On("Check", "secret", "hash").Return(true)
			}

			resp := fx.service.GetToken(context.Background(), user.Email, "secret", false)

			assert.Equal(t, usecase.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestTokenService_GetToken_Success(t *testing.T) {
	fx := createTestTokenService(t, defaultAuthConfig())
	ctx := context.Background()
	user := newTestUser()
	user.SignIn.AccessFailedCount = 2

	fx.userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	fx.hasher.On("Check", "secret", "hash").Return(true)
	fx.userRepo.On("ResetFailedSignIn", mock.Anything, user.ID).Return(nil)
	fx.expectIssue(user, true)

	var stored *entity.RefreshToken
	fx.refreshTokens.On("CreateRefreshToken", mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*entity.RefreshToken) }).
		Return(nil)

	resp := fx.service.GetToken(ctx, user.Email, "secret", true)

	require.Equal(t, usecase.StatusOk, resp.StatusCode, resp.Message)
	assert.Equal(t, "access-token", resp.Content.AccessToken)
	assert.Equal(t, "refresh-token", resp.Content.RefreshToken)
	assert.Equal(t, user, resp.Content.User)

	require.NotNil(t, stored)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, "refresh-hash", stored.TokenHash)
	assert.True(t, stored.RememberMe)
	assert.Equal(t, testNow.Add(7*24*time.Hour), stored.ExpiresAt)
	assert.Equal(t, 1, fx.txManager.Calls)
}

func TestTokenService_IssueTokenPair_RevokesOldestSessions(t *testing.T) {
	fx := createTestTokenService(t, &config.AuthConfig{MaxActiveSessions: 2})
	ctx := context.Background()
	user := newTestUser()

	active := []*entity.RefreshToken{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}

	fx.expectIssue(user, false)
	fx.refreshTokens.On("FindActiveRefreshTokensByUserID", mock.Anything, user.ID).Return(active, nil)
	fx.refreshTokens.On("RevokeRefreshToken", mock.Anything, active[0].ID, (*uuid.UUID)(nil)).Return(nil).Once()
	fx.refreshTokens.On("RevokeRefreshToken", mock.Anything, active[1].ID, (*uuid.UUID)(nil)).Return(nil).Once()
	fx.refreshTokens.On("CreateRefreshToken", mock.Anything, mock.Anything).Return(nil)

	resp := fx.service.IssueTokenPair(ctx, user, false)

	require.True(t, resp.Succeeded(), resp.Message)
	fx.refreshTokens.AssertNotCalled(t, "RevokeRefreshToken", mock.Anything, active[2].ID, mock.Anything)
}

func TestTokenService_IssueTokenPair_NilUser(t *testing.T) {
	fx := createTestTokenService(t, nil)

	resp := fx.service.IssueTokenPair(context.Background(), nil, false)

	assert.Equal(t, usecase.StatusBadRequest, resp.StatusCode)
}

func TestTokenService_IssueTokenPair_StoreFailure(t *testing.T) {
	fx := createTestTokenService(t, nil)
	user := newTestUser()

	fx.expectIssue(user, false)
	fx.refreshTokens.On("CreateRefreshToken", mock.Anything, mock.Anything).
		Return(domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to create refresh token"))

	resp := fx.service.IssueTokenPair(context.Background(), user, false)

	assert.Equal(t, usecase.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "An unexpected error occurred.", resp.Message)
	assert.Nil(t, resp.Content)
}

func TestTokenService_RefreshToken_RotatesInOneTransaction(t *testing.T) {
	fx := createTestTokenService(t, nil)
	ctx := context.Background()
	user := newTestUser()
	current := &entity.RefreshToken{ID: uuid.New(), UserID: user.ID, RememberMe: true}

	fx.tokens.On("ParseAccessToken", "expired-access", false).
		Return(&service.Claims{Email: user.Email, UserID: user.ID.String()}, nil)
	fx.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	fx.tokens.On("HashToken", "old-refresh").Return("old-hash")
	fx.refreshTokens.On("FindActiveRefreshToken", mock.Anything, user.ID, "old-hash").Return(current, nil)
	fx.expectIssue(user, true)

	var replacement *entity.RefreshToken
	fx.refreshTokens.On("CreateRefreshToken", mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(args mock.Arguments) { replacement = args.Get(1).(*entity.RefreshToken) }).
		Return(nil)
	fx.refreshTokens.On("RevokeRefreshToken", mock.Anything, current.ID, mock.AnythingOfType("*uuid.UUID")).
		Run(func(args mock.Arguments) {
			require.NotNil(t, replacement)
			assert.Equal(t, replacement.ID, *args.Get(2).(*uuid.UUID))
		}).
		Return(nil)
	fx.refreshTokens.On("DeleteExpiredRefreshTokens", mock.Anything, user.ID).Return(nil)

	resp := fx.service.RefreshToken(ctx, "expired-access", "old-refresh")

	require.Equal(t, usecase.StatusOk, resp.StatusCode, resp.Message)
	assert.Equal(t, "access-token", resp.Content.AccessToken)
	assert.Equal(t, "refresh-token", resp.Content.RefreshToken)
	assert.True(t, replacement.RememberMe)
	assert.Equal(t, 1, fx.txManager.Calls)
}

func TestTokenService_RefreshToken_RevokedTokenRejected(t *testing.T) {
	fx := createTestTokenService(t, nil)
	user := newTestUser()

	fx.tokens.On("ParseAccessToken", "access", false).
		Return(&service.Claims{Email: user.Email, UserID: user.ID.String()}, nil)
	fx.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	fx.tokens.On("GenerateAccessToken", user).Return("access-token", testNow.Add(time.Hour), nil)
	fx.tokens.On("HashToken", "used-refresh").Return("used-hash")
	fx.refreshTokens.On("FindActiveRefreshToken", mock.Anything, user.ID, "used-hash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	resp := fx.service.RefreshToken(context.Background(), "access", "used-refresh")

	assert.Equal(t, usecase.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid refresh token.", resp.Message)
	fx.refreshTokens.AssertNotCalled(t, "CreateRefreshToken", mock.Anything, mock.Anything)
}

func TestTokenService_RefreshToken_BadClaims(t *testing.T) {
	tests := []struct {
		name        string
		claims      *service.Claims
		wantMessage string
	}{
		{
			name:        "missing email",
			claims:      &service.Claims{UserID: uuid.NewString()},
			wantMessage: "Invalid token: email or user ID claim missing.",
		},
		{
			name:        "missing user id",
			claims:      &service.Claims{Email: "jane@example.com"},
			wantMessage: "Invalid token: email or user ID claim missing.",
		},
		{
			name:        "malformed user id",
			claims:      &service.Claims{Email: "jane@example.com", UserID: "not-a-uuid"},
			wantMessage: "Invalid token: user ID claim is not a valid UUID.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestTokenService(t, nil)
			fx.tokens.On("ParseAccessToken", "access", false).Return(tt.claims, nil)

			resp := fx.service.RefreshToken(context.Background(), "access", "refresh")

			assert.Equal(t, usecase.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestTokenService_RefreshToken_UnknownUser(t *testing.T) {
	fx := createTestTokenService(t, nil)
	userID := uuid.New()

	fx.tokens.On("ParseAccessToken", "access", false).
		Return(&service.Claims{Email: "gone@example.com", UserID: userID.String()}, nil)
	fx.userRepo.On("FindByID", mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	resp := fx.service.RefreshToken(context.Background(), "access", "refresh")

	assert.Equal(t, usecase.StatusNotFound, resp.StatusCode)
}

func TestTokenService_GetUserIDFromToken(t *testing.T) {
	fx := createTestTokenService(t, nil)
	userID := uuid.New()

	fx.tokens.On("ParseAccessToken", "good", true).Return(&service.Claims{UserID: userID.String()}, nil)
	fx.tokens.On("ParseAccessToken", "expired", true).
		Return(nil, domainerrors.ErrAccessTokenInvalid.WrapMessage("token is expired"))

	ok := fx.service.GetUserIDFromToken(context.Background(), "good")
	require.True(t, ok.Succeeded())
	assert.Equal(t, userID, ok.Content)

	expired := fx.service.GetUserIDFromToken(context.Background(), "expired")
	assert.Equal(t, usecase.StatusUnauthorized, expired.StatusCode)
	assert.Equal(t, uuid.Nil, expired.Content)
}

func TestTokenService_RevokeToken(t *testing.T) {
	fx := createTestTokenService(t, nil)
	record := &entity.RefreshToken{ID: uuid.New()}

	fx.tokens.On("HashToken", "known").Return("known-hash")
	fx.tokens.On("HashToken", "unknown").Return("unknown-hash")
	fx.refreshTokens.On("FindRefreshTokenByHash", mock.Anything, "known-hash").Return(record, nil)
	fx.refreshTokens.On("FindRefreshTokenByHash", mock.Anything, "unknown-hash").Return(nil, repository.ErrRefreshTokenNotFound)
	fx.refreshTokens.On("RevokeRefreshToken", mock.Anything, record.ID, (*uuid.UUID)(nil)).Return(nil)

	revoked := fx.service.RevokeToken(context.Background(), "known")
	assert.Equal(t, usecase.StatusNoContent, revoked.StatusCode)

	missing := fx.service.RevokeToken(context.Background(), "unknown")
	assert.Equal(t, usecase.StatusNotFound, missing.StatusCode)
}
