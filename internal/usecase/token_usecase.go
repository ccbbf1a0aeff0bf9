package usecase

import (
	"context"
	"time"

	"manero/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenOutput is a freshly issued token pair.
type TokenOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenUsecase issues, refreshes, validates and revokes tokens.
type TokenUsecase interface {
	// GetToken signs the user in with a password and issues a token pair.
	GetToken(ctx context.Context, email, password string, rememberMe bool) ServiceResponse[*TokenOutput]

	// IssueTokenPair issues a token pair for an already authenticated user.
	IssueTokenPair(ctx context.Context, user *entity.User, rememberMe bool) ServiceResponse[*TokenOutput]

	// RefreshToken exchanges a possibly expired access token and a stored
	// refresh token for a new pair, revoking the presented refresh token.
	RefreshToken(ctx context.Context, accessToken, refreshToken string) ServiceResponse[*TokenOutput]

	// GetUserIDFromToken validates an access token, expiry included.
	GetUserIDFromToken(ctx context.Context, accessToken string) ServiceResponse[uuid.UUID]

	// RevokeToken revokes a stored refresh token.
	RevokeToken(ctx context.Context, refreshToken string) ServiceResponse[struct{}]
}
