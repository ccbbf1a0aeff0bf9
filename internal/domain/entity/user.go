// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoogleUserPasswordPlaceholder is stored as the password hash of accounts
// created through Google sign-in. It is not a bcrypt hash, so a password
// check against it always fails.
const GoogleUserPasswordPlaceholder = "GoogleUserPWD"

// User is an identity record. It is created at registration or on the first
// OAuth login and is never hard-deleted.
type User struct {
	ID            uuid.UUID    // Primary identifier, carried in the access token uid claim.
	Email         string       // Unique login identifier.
	FullName      string       // Display name.
	FirstName     string       // Given name, optional.
	LastName      string       // Family name, optional.
	PasswordHash  string       // bcrypt hash, or GoogleUserPasswordPlaceholder.
	OAuthProvider ProviderType // Empty for local accounts.
	OAuthID       string       // Subject id from the OAuth provider.
	SignIn        SignInState  // Lockout and login policy state.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SignInState tracks the account policy consulted on every password sign-in.
type SignInState struct {
	AccessFailedCount int        // Consecutive failed password attempts.
	LockoutEnd        *time.Time // Sign-in is refused until this instant.
	TwoFactorEnabled  bool       // Password alone is not sufficient.
	LoginDisabled     bool       // Account may not sign in at all.
}

// IsLockedOut reports whether the account is locked at the given time.
func (s SignInState) IsLockedOut(now time.Time) bool {
	return s.LockoutEnd != nil && s.LockoutEnd.After(now)
}

// IsOAuthUser reports whether the account was created through an external provider.
func (u *User) IsOAuthUser() bool {
	return u.OAuthProvider != ""
}

// DisplayName returns the full name, falling back to first and last name.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}
