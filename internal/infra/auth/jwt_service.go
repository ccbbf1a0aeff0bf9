// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"slices"
	"time"

	"manero/config"
	"manero/internal/domain/entity"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/domain/service"
	"manero/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const refreshTokenBytes = 32

// jwtService is a concrete implementation of the TokenService interface using
// HS256 signed JWTs. Keys are selected by the kid header so secrets can be
// rotated without invalidating tokens signed with a retired key.
type jwtService struct {
	keys        map[string][]byte
	activeKid   string
	issuer      string
	audience    string
	accessTTL   time.Duration
	refreshTTL  time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if err := cfg.Token.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid token configuration")
	}

	keys := make(map[string][]byte, len(cfg.Token.SigningKeys))
	for _, key := range cfg.Token.SigningKeys {
		keys[key.Kid] = []byte(key.Secret)
	}

	return &jwtService{
		keys:        keys,
		activeKid:   cfg.Token.ActiveKeyID,
		issuer:      cfg.Token.Issuer,
		audience:    cfg.Token.Audience,
		accessTTL:   cfg.Token.AccessTokenTTL,
		refreshTTL:  cfg.Token.RefreshTokenTTL,
		rememberTTL: cfg.Token.RememberMeTTL,
		now:         time.Now,
	}, nil
}

// GenerateAccessToken signs an access token carrying the user's email and id.
func (s *jwtService) GenerateAccessToken(user *entity.User) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, errors.New("user is required")
	}

	now := s.now()
	expiresAt := now.Add(s.accessTTL)

	claims := service.Claims{
		Email:  user.Email,
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = s.activeKid

	signed, err := token.SignedString(s.keys[s.activeKid])
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign access token")
	}

	return signed, expiresAt, nil
}

// GenerateRefreshToken returns 32 random bytes, base64 encoded.
func (s *jwtService) GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// ParseAccessToken verifies the signature, algorithm, issuer and audience.
// With validateLifetime false an expired token is still accepted, which is
// what the refresh flow needs.
func (s *jwtService) ParseAccessToken(tokenString string, validateLifetime bool) (*service.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if validateLifetime {
		if s.issuer != "" {
			opts = append(opts, jwt.WithIssuer(s.issuer))
		}
		if s.audience != "" {
			opts = append(opts, jwt.WithAudience(s.audience))
		}
		opts = append(opts, jwt.WithExpirationRequired())
	} else {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &service.Claims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, opts...); err != nil {
		return nil, domainerrors.ErrAccessTokenInvalid.WrapMessage(err.Error())
	}

	if !validateLifetime {
		if s.issuer != "" && claims.Issuer != s.issuer {
			return nil, domainerrors.ErrAccessTokenInvalid.WrapMessage("unexpected issuer")
		}
		if s.audience != "" && !slices.Contains(claims.Audience, s.audience) {
			return nil, domainerrors.ErrAccessTokenInvalid.WrapMessage("unexpected audience")
		}
	}

	return claims, nil
}

// HashToken returns the hex SHA-256 digest stored in place of a refresh token.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

func (s *jwtService) RefreshTokenDuration(rememberMe bool) time.Duration {
	if rememberMe {
		return s.rememberTTL
	}

	return s.refreshTTL
}

func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("token has no kid header")
	}

	key, ok := s.keys[kid]
	if !ok {
		return nil, errors.Errorf("unknown signing key %q", kid)
	}

	return key, nil
}
