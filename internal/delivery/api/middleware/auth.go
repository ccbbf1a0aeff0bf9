package middleware

import (
	"strings"

	"manero/internal/delivery/api/response"
	deliverycontext "manero/internal/delivery/context"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware authenticates requests with a bearer access token.
type AuthMiddleware struct {
	tokens usecase.TokenUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokens usecase.TokenUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the access token, expiry included, and stores the
// user id for the handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Authorization header is missing")
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Invalid token format, must be Bearer token")
		}
		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])

		result := m.tokens.GetUserIDFromToken(c.Request().Context(), tokenString)
		if !result.Succeeded() {
			return response.FromService(c, result, nil)
		}

		deliverycontext.SetUserID(c, result.Content)

		return next(c)
	}
}

// GetUserID returns the user id stored by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetUserID(c)
}
