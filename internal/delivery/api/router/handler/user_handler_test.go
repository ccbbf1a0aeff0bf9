package handler

import (
	"net/http"
	"testing"
	"time"

	"manero/internal/domain/entity"
	domainerrors "manero/internal/domain/errors"
	usecasemocks "manero/internal/mocks/usecase"
	"manero/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Register(t *testing.T) {
	userUC := usecasemocks.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{UserUC: userUC})
	e := newTestEcho()
	e.POST("/api/users/register", h.Register)

	user := &entity.User{ID: uuid.New(), Email: "jane@example.com", FullName: "Jane Doe", PasswordHash: "secret-hash"}
	userUC.On("Register", mock.Anything, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
		return in.Email == "jane@example.com" && in.Password == "Passw0rd!" && in.ConfirmPassword == "Passw0rd!"
	})).Return(usecase.Created(&usecase.AuthOutput{
		User:         user,
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	rec := serve(e, http.MethodPost, "/api/users/register",
		`{"email":"jane@example.com","password":"Passw0rd!","confirmPassword":"Passw0rd!","fullName":"Jane Doe"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"token":"access"`)
	assert.Contains(t, body, `"refreshToken":"refresh"`)
	assert.Contains(t, body, `"email":"jane@example.com"`)
	assert.NotContains(t, body, "secret-hash")
}

func TestUserHandler_Register_ValidationDetails(t *testing.T) {
	h := NewUserHandler(UserHandlerParams{UserUC: usecasemocks.NewMockUserUsecase(t)})
	e := newTestEcho()
	e.POST("/api/users/register", h.Register)

	rec := serve(e, http.MethodPost, "/api/users/register", `{"email":"not-an-email","password":"short"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, "email", env.Error.Details["email"])
	assert.Equal(t, "min=8", env.Error.Details["password"])
	assert.Equal(t, "required", env.Error.Details["confirmPassword"])
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		h := NewUserHandler(UserHandlerParams{UserUC: usecasemocks.NewMockUserUsecase(t)})
		e := newTestEcho()
		e.POST("/api/users/login", h.Login)

		rec := serve(e, http.MethodPost, "/api/users/login", `{"email":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Equal(t, "Invalid request body.", env.Error.Message)
	})

	t.Run("rejected credentials keep the usecase message", func(t *testing.T) {
		userUC := usecasemocks.NewMockUserUsecase(t)
		h := NewUserHandler(UserHandlerParams{UserUC: userUC})
		e := newTestEcho()
		e.POST("/api/users/login", h.Login)

		userUC.On("Login", mock.Anything, mock.Anything).
			Return(usecase.FromError[*usecase.LoginOutput](domainerrors.ErrInvalidCredentials))

		rec := serve(e, http.MethodPost, "/api/users/login", `{"email":"jane@example.com","password":"wrong"}`)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decode(t, rec)
		assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), env.Error.Code)
		assert.Equal(t, domainerrors.ErrInvalidCredentials.Message(), env.Error.Message)
	})

	t.Run("success", func(t *testing.T) {
		userUC := usecasemocks.NewMockUserUsecase(t)
		h := NewUserHandler(UserHandlerParams{UserUC: userUC})
		e := newTestEcho()
		e.POST("/api/users/login", h.Login)

		user := &entity.User{ID: uuid.New(), Email: "jane@example.com", FullName: "Jane Doe"}
		userUC.On("Login", mock.Anything, &usecase.LoginInput{Email: "jane@example.com", Password: "Passw0rd!", RememberMe: true}).
			Return(usecase.Ok(&usecase.LoginOutput{AccessToken: "access", RefreshToken: "refresh", User: user}))

		rec := serve(e, http.MethodPost, "/api/users/login", `{"email":"jane@example.com","password":"Passw0rd!","rememberMe":true}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"fullName":"Jane Doe"`)
	})
}

func TestUserHandler_GetAll_InternalErrorIsMasked(t *testing.T) {
	userUC := usecasemocks.NewMockUserUsecase(t)
	h := NewUserHandler(UserHandlerParams{UserUC: userUC})
	e := newTestEcho()
	e.GET("/api/users/allusers", h.GetAll)

	userUC.On("GetAll", mock.Anything).
		Return(usecase.FromError[[]*entity.User](assert.AnError))

	rec := serve(e, http.MethodGet, "/api/users/allusers", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
