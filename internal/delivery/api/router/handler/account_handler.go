package handler

import (
	"manero/internal/delivery/api/middleware"
	"manero/internal/delivery/api/response"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
}

// AccountHandler serves account lookups for authenticated users.
type AccountHandler struct {
	userUC usecase.UserUsecase
}

// NewAccountHandler is the constructor for AccountHandler.
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{userUC: params.UserUC}
}

// GetUserInfo returns the account behind the access token.
func (h *AccountHandler) GetUserInfo(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "Invalid user ID in token")
	}

	return response.FromService(c, h.userUC.GetUserByID(c.Request().Context(), userID), userView)
}

// GetUserByEmail looks an account up by the email query parameter.
func (h *AccountHandler) GetUserByEmail(c echo.Context) error {
	return response.FromService(c, h.userUC.GetUserByEmail(c.Request().Context(), c.QueryParam("email")), userView)
}
