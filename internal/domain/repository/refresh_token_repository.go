package repository

import (
	"context"

	"manero/internal/domain/entity"
	"manero/internal/errors"

	"github.com/google/uuid"
)

// ErrRefreshTokenNotFound is returned when no stored token matches.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores refresh tokens by hash.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a token by hash regardless of its state.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// FindActiveRefreshToken retrieves a non-revoked, non-expired token owned by
	// the user. The row is locked for update when running inside a transaction.
	FindActiveRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) (*entity.RefreshToken, error)

	// FindActiveRefreshTokensByUserID returns the user's usable tokens, oldest first.
	FindActiveRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error)

	// RevokeRefreshToken marks a token revoked, recording its replacement if any.
	RevokeRefreshToken(ctx context.Context, id uuid.UUID, replacedBy *uuid.UUID) error

	// RevokeRefreshTokensByUserID revokes every active token of the user.
	RevokeRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpiredRefreshTokens removes expired tokens of the user.
	DeleteExpiredRefreshTokens(ctx context.Context, userID uuid.UUID) error

	// CountActiveSessionsByUserID returns the number of usable tokens of the user.
	CountActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) (int, error)
}
