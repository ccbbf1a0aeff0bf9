package handler

import (
	"net/http"
	"testing"

	domainerrors "manero/internal/domain/errors"
	usecasemocks "manero/internal/mocks/usecase"
	"manero/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTokenHandler_Refresh(t *testing.T) {
	tokenUC := usecasemocks.NewMockTokenUsecase(t)
	h := NewTokenHandler(TokenHandlerParams{TokenUC: tokenUC})
	e := newTestEcho()
	e.POST("/api/token/refresh", h.Refresh)

	tokenUC.On("RefreshToken", mock.Anything, "old-access", "old-refresh").
		Return(usecase.Ok(&usecase.TokenOutput{AccessToken: "new-access", RefreshToken: "new-refresh"}))

	rec := serve(e, http.MethodPost, "/api/token/refresh", `{"accessToken":"old-access","refreshToken":"old-refresh"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"refreshToken":"new-refresh"`)
}

func TestTokenHandler_Revoke(t *testing.T) {
	t.Run("revoked", func(t *testing.T) {
		tokenUC := usecasemocks.NewMockTokenUsecase(t)
		h := NewTokenHandler(TokenHandlerParams{TokenUC: tokenUC})
		e := newTestEcho()
		e.POST("/api/token/revoke", h.Revoke)

		tokenUC.On("RevokeToken", mock.Anything, "refresh").Return(usecase.NoContent[struct{}]())

		rec := serve(e, http.MethodPost, "/api/token/revoke", `{"refreshToken":"refresh"}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		tokenUC := usecasemocks.NewMockTokenUsecase(t)
		h := NewTokenHandler(TokenHandlerParams{TokenUC: tokenUC})
		e := newTestEcho()
		e.POST("/api/token/revoke", h.Revoke)

		tokenUC.On("RevokeToken", mock.Anything, "missing").
			Return(usecase.FromError[struct{}](domainerrors.ErrRefreshTokenNotFound))

		rec := serve(e, http.MethodPost, "/api/token/revoke", `{"refreshToken":"missing"}`)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, domainerrors.ErrRefreshTokenNotFound.ErrorCode(), decode(t, rec).Error.Code)
	})
}
