package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "manero/internal/domain/errors"
	usecasemocks "manero/internal/mocks/usecase"
	"manero/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		setup      func(m *usecasemocks.MockTokenUsecase)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authorization header is missing",
		},
		{
			name:       "not a bearer token",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "must be Bearer token",
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setup: func(m *usecasemocks.MockTokenUsecase) {
				m.On("GetUserIDFromToken", mock.Anything, "expired").
					Return(usecase.FromError[uuid.UUID](domainerrors.ErrAccessTokenInvalid))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   domainerrors.ErrAccessTokenInvalid.ErrorCode(),
		},
		{
			name:   "valid token with lowercase scheme",
			header: "bearer good",
			setup: func(m *usecasemocks.MockTokenUsecase) {
				m.On("GetUserIDFromToken", mock.Anything, "good").Return(usecase.Ok(userID))
			},
			wantStatus: http.StatusOK,
			wantBody:   userID.String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := usecasemocks.NewMockTokenUsecase(t)
			if tt.setup != nil {
				tt.setup(tokens)
			}

			e := echo.New()
			e.GET("/me", func(c echo.Context) error {
				id, ok := GetUserID(c)
				require.True(t, ok)

				return c.String(http.StatusOK, id.String())
			}, NewAuthMiddleware(tokens).Authenticate)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
