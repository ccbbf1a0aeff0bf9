package auth

import (
	"testing"
	"time"

	"manero/config"
	"manero/internal/domain/entity"
	domainerrors "manero/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig(keys ...config.SigningKey) *config.Config {
	if len(keys) == 0 {
		keys = []config.SigningKey{{Kid: "k1", Secret: "test_secret_key_very_long_for_testing"}}
	}

	return &config.Config{
		Token: config.TokenConfig{
			Issuer:          "manero",
			Audience:        "manero-clients",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			RememberMeTTL:   30 * 24 * time.Hour,
			ActiveKeyID:     keys[0].Kid,
			SigningKeys:     keys,
		},
	}
}

func newTestJWTService(t *testing.T, cfg *config.Config) *jwtService {
	t.Helper()

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_GenerateAndParseAccessToken(t *testing.T) {
	svc := newTestJWTService(t, newTestTokenConfig())
	user := &entity.User{ID: uuid.New(), Email: "jane@example.com"}

	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ParseAccessToken(token, true)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "manero", claims.Issuer)
	assert.Contains(t, claims.Audience, "manero-clients")
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(t, newTestTokenConfig())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateAccessToken(&entity.User{ID: uuid.New(), Email: "jane@example.com"})
	require.NoError(t, err)

	svc.now = time.Now

	_, err = svc.ParseAccessToken(token, true)
	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)

	claims, err := svc.ParseAccessToken(token, false)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestJWTService_RejectsTamperedAndForeignTokens(t *testing.T) {
	svc := newTestJWTService(t, newTestTokenConfig())
	token, _, err := svc.GenerateAccessToken(&entity.User{ID: uuid.New(), Email: "jane@example.com"})
	require.NoError(t, err)

	t.Run("tampered signature", func(t *testing.T) {
		_, err := svc.ParseAccessToken(token+"x", false)
		assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
	})

	t.Run("unknown kid", func(t *testing.T) {
		other := newTestJWTService(t, newTestTokenConfig(config.SigningKey{Kid: "k9", Secret: "another_secret_key_very_long"}))
		foreign, _, err := other.GenerateAccessToken(&entity.User{ID: uuid.New(), Email: "x@example.com"})
		require.NoError(t, err)

		_, err = svc.ParseAccessToken(foreign, false)
		assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"email": "x@example.com", "iss": "manero"})
		unsigned.Header["kid"] = "k1"
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ParseAccessToken(raw, false)
		assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		cfg := newTestTokenConfig()
		cfg.Token.Issuer = "someone-else"
		other := newTestJWTService(t, cfg)
		foreign, _, err := other.GenerateAccessToken(&entity.User{ID: uuid.New(), Email: "x@example.com"})
		require.NoError(t, err)

		_, err = svc.ParseAccessToken(foreign, false)
		assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
	})
}

func TestJWTService_KeyRotation(t *testing.T) {
	oldKey := config.SigningKey{Kid: "2025", Secret: "old_secret_key_very_long_for_testing"}
	newKey := config.SigningKey{Kid: "2026", Secret: "new_secret_key_very_long_for_testing"}

	before := newTestJWTService(t, newTestTokenConfig(oldKey))
	token, _, err := before.GenerateAccessToken(&entity.User{ID: uuid.New(), Email: "jane@example.com"})
	require.NoError(t, err)

	cfg := newTestTokenConfig(newKey, oldKey)
	after := newTestJWTService(t, cfg)

	_, err = after.ParseAccessToken(token, true)
	assert.NoError(t, err, "tokens signed with a retired key stay valid while the key is configured")

	fresh, _, err := after.GenerateAccessToken(&entity.User{ID: uuid.New(), Email: "jane@example.com"})
	require.NoError(t, err)
	parsed, _, err := jwt.NewParser().ParseUnverified(fresh, jwt.MapClaims{})
	require.NoError(t, err)
	assert.Equal(t, "2026", parsed.Header["kid"])
}

func TestJWTService_RefreshTokens(t *testing.T) {
	svc := newTestJWTService(t, newTestTokenConfig())

	first, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	second, err := svc.GenerateRefreshToken()
	require.NoError(t, err)

	assert.Len(t, first, 44)
	assert.NotEqual(t, first, second)

	hash := svc.HashToken(first)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, svc.HashToken(first))
	assert.NotEqual(t, hash, svc.HashToken(second))

	assert.Equal(t, 7*24*time.Hour, svc.RefreshTokenDuration(false))
	assert.Equal(t, 30*24*time.Hour, svc.RefreshTokenDuration(true))
}

func TestNewJWTService_InvalidConfig(t *testing.T) {
	cfg := newTestTokenConfig()
	cfg.Token.ActiveKeyID = "missing"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}
