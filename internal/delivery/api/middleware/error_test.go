package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"manero/internal/delivery/api/validator"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}
	validationErr := validator.New().Validate(&payload{})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   []string
		hideBody   string
	}{
		{
			name:       "validation errors carry field details",
			err:        errors.WithStack(validationErr),
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{"VALIDATION_FAILED", `"name":"required"`},
		},
		{
			name:       "domain error keeps its code",
			err:        errors.Wrap(domainerrors.ErrCategoryNotFound, "lookup"),
			wantStatus: http.StatusNotFound,
			wantBody:   []string{domainerrors.ErrCategoryNotFound.ErrorCode()},
		},
		{
			name:       "internal domain error is masked",
			err:        domainerrors.ErrInternalError.WrapMessage("connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"INTERNAL_ERROR"},
			hideBody:   "connection reset",
		},
		{
			name:       "echo error",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"),
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   []string{"HTTP_ERROR", "method not allowed"},
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"INTERNAL_ERROR"},
			hideBody:   "boom",
		},
	}

	handler := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
			if tt.hideBody != "" {
				assert.NotContains(t, rec.Body.String(), tt.hideBody)
			}
		})
	}
}
