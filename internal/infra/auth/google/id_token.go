package google

import (
	"context"
	"log/slog"

	"manero/config"
	deliverycontext "manero/internal/delivery/context"
	"manero/internal/domain/entity"
	"manero/internal/domain/service"
	"manero/internal/errors"

	"google.golang.org/api/idtoken"
)

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// IDTokenService verifies Google ID tokens against the configured client id.
type IDTokenService struct {
	clientID string
	validate validateFunc
	logger   *slog.Logger
}

// NewIDTokenService creates a new Google ID token verifier.
func NewIDTokenService(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	var clientID string
	if cfg.GoogleOAuth != nil {
		clientID = cfg.GoogleOAuth.ClientID
	}

	return &IDTokenService{
		clientID: clientID,
		validate: idtoken.Validate,
		logger:   logger,
	}
}

// VerifyIDToken checks signature, expiry, issuer and audience, then maps the
// payload claims to an OAuthUser. Unverified emails are rejected.
func (s *IDTokenService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	if s.clientID == "" {
		return nil, errors.New("google client id is not configured")
	}

	payload, err := s.validate(ctx, idToken, s.clientID)
	if err != nil {
		logger.WarnContext(ctx, "Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid ID token")
	}

	user := &service.OAuthUser{
		ID:            payload.Subject,
		Email:         stringClaim(payload.Claims, "email"),
		EmailVerified: boolClaim(payload.Claims, "email_verified"),
		Name:          stringClaim(payload.Claims, "name"),
		GivenName:     stringClaim(payload.Claims, "given_name"),
		FamilyName:    stringClaim(payload.Claims, "family_name"),
		PictureURL:    stringClaim(payload.Claims, "picture"),
		Locale:        stringClaim(payload.Claims, "locale"),
		Provider:      entity.ProviderTypeGoogle,
	}
	if !user.EmailVerified {
		return nil, errors.New("email not verified")
	}

	logger.InfoContext(ctx, "Google ID token verified", slog.String("subject", user.ID))

	return user, nil
}

// GetProvider returns the OAuth provider type
func (s *IDTokenService) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

func stringClaim(claims map[string]any, key string) string {
	v, _ := claims[key].(string)

	return v
}

// boolClaim accepts both JSON booleans and the "true" string some issuers send.
func boolClaim(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
