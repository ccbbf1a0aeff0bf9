package handler

import (
	"manero/internal/delivery/api/response"
	"manero/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TokenHandlerParams holds dependencies for TokenHandler, injected by Fx.
type TokenHandlerParams struct {
	fx.In

	TokenUC usecase.TokenUsecase
}

// TokenHandler issues, rotates and revokes tokens.
type TokenHandler struct {
	tokenUC usecase.TokenUsecase
}

// NewTokenHandler is the constructor for TokenHandler.
func NewTokenHandler(params TokenHandlerParams) *TokenHandler {
	return &TokenHandler{tokenUC: params.TokenUC}
}

// RefreshRequest carries the possibly expired access token and the refresh
// token to exchange.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RevokeRequest carries the refresh token to revoke.
type RevokeRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// GetToken signs in and returns a token pair.
func (h *TokenHandler) GetToken(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result := h.tokenUC.GetToken(c.Request().Context(), req.Email, req.Password, req.RememberMe)

	return response.FromService(c, result, newTokenResponse)
}

// Refresh rotates a refresh token.
func (h *TokenHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result := h.tokenUC.RefreshToken(c.Request().Context(), req.AccessToken, req.RefreshToken)

	return response.FromService(c, result, newTokenResponse)
}

// Revoke logs a refresh token out.
func (h *TokenHandler) Revoke(c echo.Context) error {
	var req RevokeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	return response.FromService(c, h.tokenUC.RevokeToken(c.Request().Context(), req.RefreshToken), nil)
}
