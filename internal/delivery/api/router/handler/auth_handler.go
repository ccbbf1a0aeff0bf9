package handler

import (
	"manero/internal/delivery/api/response"
	"manero/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	ExternalAuthUC usecase.ExternalAuthUsecase
}

// AuthHandler serves sign-in through Google.
type AuthHandler struct {
	externalAuthUC usecase.ExternalAuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{externalAuthUC: params.ExternalAuthUC}
}

// GoogleAuthRequest carries the authorization code from the consent redirect.
type GoogleAuthRequest struct {
	Code string `json:"code" validate:"required"`
}

// GoogleIDTokenRequest carries an ID token obtained by the client.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// GoogleAuth runs the authorization code flow. Existing accounts get 200,
// new ones 201.
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	var req GoogleAuthRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	return response.FromService(c, h.externalAuthUC.AuthenticateWithGoogle(c.Request().Context(), req.Code), newAuthResponse)
}

// GoogleIDToken signs in with a Google ID token.
func (h *AuthHandler) GoogleIDToken(c echo.Context) error {
	var req GoogleIDTokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	return response.FromService(c, h.externalAuthUC.AuthenticateWithGoogleIDToken(c.Request().Context(), req.IDToken), newAuthResponse)
}
