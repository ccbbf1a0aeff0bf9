// Package google talks to Google's OAuth 2.0 and OpenID Connect endpoints.
package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"manero/config"
	"manero/internal/domain/entity"
	"manero/internal/domain/service"
	"manero/internal/errors"

	"golang.org/x/oauth2"
	googleendpoint "golang.org/x/oauth2/google"
)

const (
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	defaultScopes      = "openid email profile"
	maxUserInfoBody    = 1 << 20
)

// OAuthService handles Google OAuth infrastructure operations
type OAuthService struct {
	oauthConfig *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewOAuthService creates a new Google OAuth service
func NewOAuthService(cfg *config.Config) service.OAuthService {
	endpoint := googleendpoint.Endpoint
	userInfoURL := defaultUserInfoURL
	scopes := defaultScopes

	var clientID, clientSecret, redirectURI string
	if g := cfg.GoogleOAuth; g != nil {
		clientID, clientSecret, redirectURI = g.ClientID, g.ClientSecret, g.RedirectURI
		if g.TokenURL != "" {
			endpoint.TokenURL = g.TokenURL
		}
		if g.UserInfoURL != "" {
			userInfoURL = g.UserInfoURL
		}
		if g.Scopes != "" {
			scopes = g.Scopes
		}
	}

	return &OAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       strings.Fields(scopes),
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		httpClient:  http.DefaultClient,
	}
}

// GetProvider returns the OAuth provider type
func (s *OAuthService) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// ExchangeCode trades an authorization code for an access token.
func (s *OAuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrap(err, "failed to exchange code for token")
	}
	if token.AccessToken == "" {
		return "", errors.New("token response carried no access token")
	}

	return token.AccessToken, nil
}

// GetUserInfo retrieves user information using an access token
func (s *OAuthService) GetUserInfo(ctx context.Context, accessToken string) (*service.OAuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserInfoBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read user info response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var googleUser struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		GivenName     string `json:"given_name"`
		FamilyName    string `json:"family_name"`
		Picture       string `json:"picture"`
		Locale        string `json:"locale"`
	}
	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	return &service.OAuthUser{
		ID:            googleUser.Sub,
		Email:         googleUser.Email,
		EmailVerified: googleUser.EmailVerified,
		Name:          googleUser.Name,
		GivenName:     googleUser.GivenName,
		FamilyName:    googleUser.FamilyName,
		PictureURL:    googleUser.Picture,
		Locale:        googleUser.Locale,
		Provider:      entity.ProviderTypeGoogle,
	}, nil
}
