package google

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"manero/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newTestIDTokenService(validate validateFunc) *IDTokenService {
	svc := NewIDTokenService(&config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{ClientID: "client"},
	}, slog.Default()).(*IDTokenService)
	svc.validate = validate

	return svc
}

func TestIDTokenService_VerifyIDToken(t *testing.T) {
	var gotAudience string
	svc := newTestIDTokenService(func(_ context.Context, _ string, audience string) (*idtoken.Payload, error) {
		gotAudience = audience

		return &idtoken.Payload{
			Subject: "1234",
			Claims: map[string]any{
				"email":          "jane@example.com",
				"email_verified": true,
				"given_name":     "Jane",
				"family_name":    "Doe",
			},
		}, nil
	})

	user, err := svc.VerifyIDToken(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "client", gotAudience)
	assert.Equal(t, "1234", user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane", user.GivenName)
}

func TestIDTokenService_RejectsUnverifiedEmail(t *testing.T) {
	svc := newTestIDTokenService(func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Subject: "1234",
			Claims:  map[string]any{"email": "jane@example.com", "email_verified": "false"},
		}, nil
	})

	_, err := svc.VerifyIDToken(context.Background(), "token")
	assert.ErrorContains(t, err, "email not verified")
}

func TestIDTokenService_InvalidToken(t *testing.T) {
	svc := newTestIDTokenService(func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("idtoken: token expired")
	})

	_, err := svc.VerifyIDToken(context.Background(), "token")
	assert.ErrorContains(t, err, "invalid ID token")
}
