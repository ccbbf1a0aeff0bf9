package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies an external identity provider.
type ProviderType string

const (
	// ProviderTypeGoogle marks accounts linked to Google sign-in.
	ProviderTypeGoogle ProviderType = "Google"
)

func (p ProviderType) String() string {
	return string(p)
}

// RefreshToken is a stored, long-lived credential that can be exchanged for a
// new access token. Only the SHA-256 hash of the raw token is persisted.
type RefreshToken struct {
	ID         uuid.UUID  // Record id.
	UserID     uuid.UUID  // Owner.
	TokenHash  string     // Hex SHA-256 of the opaque token handed to the client.
	ExpiresAt  time.Time  // 7 days, or 30 days with remember-me.
	CreatedAt  time.Time  // Issue time.
	RevokedAt  *time.Time // Set on logout or rotation.
	ReplacedBy *uuid.UUID // Token issued in exchange for this one.
	RememberMe bool       // Selects the longer lifetime and carries over on rotation.
}

// IsRevoked reports whether the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the token has passed its expiry.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsActive reports whether the token can still be exchanged.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}
