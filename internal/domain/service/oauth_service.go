package service

import (
	"context"

	"manero/internal/domain/entity"
)

// OAuthUser is the profile returned by an external identity provider.
type OAuthUser struct {
	ID            string              // Provider subject id.
	Email         string              // Email address.
	EmailVerified bool                // Whether the provider verified the email.
	Name          string              // Display name.
	GivenName     string              // First name.
	FamilyName    string              // Last name.
	PictureURL    string              // Avatar.
	Locale        string              // Preferred locale.
	Provider      entity.ProviderType // Source provider.
}

// OAuthService runs the authorization code flow against a provider.
type OAuthService interface {
	// ExchangeCode trades an authorization code for a provider access token.
	ExchangeCode(ctx context.Context, code string) (accessToken string, err error)

	// GetUserInfo fetches the profile behind a provider access token.
	GetUserInfo(ctx context.Context, accessToken string) (*OAuthUser, error)

	// GetProvider returns the provider this service talks to.
	GetProvider() entity.ProviderType
}

// OAuthAuthService verifies ID tokens sent directly by a client.
type OAuthAuthService interface {
	// VerifyIDToken validates the token signature and audience and returns the profile.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)

	// GetProvider returns the provider this service talks to.
	GetProvider() entity.ProviderType
}
