package repository

import (
	"context"
	"time"

	"manero/internal/domain/entity"
	"manero/internal/errors"

	"github.com/google/uuid"
)

// Filterable user fields.
const (
	UserFieldID    = "id"
	UserFieldEmail = "email"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	Repository[entity.User]

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by email, ignoring case and surrounding spaces.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// RecordFailedSignIn increments the failed attempt counter and, once it
	// reaches maxAttempts, locks the account until lockoutEnd.
	RecordFailedSignIn(ctx context.Context, id uuid.UUID, maxAttempts int, lockoutEnd time.Time) error

	// ResetFailedSignIn clears the failed attempt counter and any lockout.
	ResetFailedSignIn(ctx context.Context, id uuid.UUID) error
}
