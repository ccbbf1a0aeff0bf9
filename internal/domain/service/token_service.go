package service

import (
	"time"

	"manero/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the custom access token claims. UserID is kept as the raw claim
// string so callers can tell a missing claim from a malformed one.
type Claims struct {
	Email  string `json:"email,omitempty"`
	UserID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and parses access tokens and mints refresh tokens.
type TokenService interface {
	// GenerateAccessToken signs an access token for the user with the active key.
	GenerateAccessToken(user *entity.User) (token string, expiresAt time.Time, err error)

	// GenerateRefreshToken returns a new opaque refresh token.
	GenerateRefreshToken() (string, error)

	// ParseAccessToken verifies the signature and structure of an access token.
	// Expiry is only enforced when validateLifetime is true.
	ParseAccessToken(tokenString string, validateLifetime bool) (*Claims, error)

	// HashToken returns the value stored for a refresh token.
	HashToken(token string) string

	// RefreshTokenDuration returns the refresh token lifetime for the remember-me choice.
	RefreshTokenDuration(rememberMe bool) time.Duration
}
