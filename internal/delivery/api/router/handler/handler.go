// Package handler contains the HTTP handlers of the API server.
package handler

import (
	"net/http"
	"strconv"

	"manero/internal/delivery/api/response"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/errors"

	"github.com/labstack/echo/v4"
)

// bind decodes the request body into req and runs its validate tags. The
// returned error is rendered by the API error handler.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithMessage("Invalid request body.").WrapMessage(err.Error())
	}
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// int64Param parses a numeric path parameter.
func int64Param(c echo.Context, name string) (int64, error) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || value <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithMessage("Path parameter " + name + " must be a positive integer.")
	}

	return value, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
