package usecase

import "context"

// ExternalAuthUsecase signs users in through an external identity provider,
// creating the local account on first use.
type ExternalAuthUsecase interface {
	// AuthenticateWithGoogle runs the authorization code flow.
	AuthenticateWithGoogle(ctx context.Context, code string) ServiceResponse[*AuthOutput]

	// AuthenticateWithGoogleIDToken signs in with an ID token obtained by the client.
	AuthenticateWithGoogleIDToken(ctx context.Context, idToken string) ServiceResponse[*AuthOutput]
}
