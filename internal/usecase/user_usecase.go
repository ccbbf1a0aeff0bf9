// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"manero/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a local account.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	FirstName       string
	LastName        string
}

// OAuthRegisterInput defines the data required to create an account linked
// to an external identity provider.
type OAuthRegisterInput struct {
	Email         string
	OAuthID       string
	OAuthProvider entity.ProviderType
	FullName      string
	FirstName     string
	LastName      string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// --- Output DTOs ---

// AuthOutput is returned when an account is created or signed in through a
// provider: the user plus a fresh token pair.
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *entity.User
}

// UserUsecase defines user account operations.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) ServiceResponse[*AuthOutput]
	CreateGoogleUser(ctx context.Context, input *OAuthRegisterInput) ServiceResponse[*AuthOutput]
	GetUserByEmail(ctx context.Context, email string) ServiceResponse[*entity.User]
	GetUserByID(ctx context.Context, id uuid.UUID) ServiceResponse[*entity.User]
	GetAll(ctx context.Context) ServiceResponse[[]*entity.User]
	Login(ctx context.Context, input *LoginInput) ServiceResponse[*LoginOutput]
}
