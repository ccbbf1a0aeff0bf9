package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"manero/config"
	deliverycontext "manero/internal/delivery/context"
	"manero/internal/domain/entity"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/domain/repository"
	"manero/internal/domain/service"
	"manero/internal/errors"
	"manero/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokens            usecase.TokenUsecase
	publisher         service.EventPublisher
	maxFailedAttempts int
	lockoutDuration   time.Duration
	logger            *slog.Logger
	now               func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Tokens    usecase.TokenUsecase
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	srv := &userService{
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		tokens:    params.Tokens,
		publisher: params.Publisher,
		logger:    params.Logger,
		now:       time.Now,
	}
	if params.Config != nil && params.Config.Auth != nil {
		srv.maxFailedAttempts = params.Config.Auth.MaxFailedAttempts
		srv.lockoutDuration = params.Config.Auth.LockoutDuration
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a local account and signs it in.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) usecase.ServiceResponse[*usecase.AuthOutput] {
	return guard(ctx, srv.log(ctx), "Register", func() (usecase.ServiceResponse[*usecase.AuthOutput], error) {
		if input == nil {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrNullContent
		}
		if strings.TrimSpace(input.Email) == "" {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrEmptyEmail
		}
		if input.Password != input.ConfirmPassword {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrPasswordMismatch
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, errors.Wrap(err, "failed to hash password")
		}

		user := &entity.User{
			Email:        input.Email,
			FullName:     input.FullName,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			PasswordHash: hash,
		}

		return srv.createAndSignIn(ctx, user)
	})
}

// CreateGoogleUser creates an account linked to a Google identity. The stored
// password hash is a placeholder, so the account cannot sign in with a password.
func (srv *userService) CreateGoogleUser(ctx context.Context, input *usecase.OAuthRegisterInput) usecase.ServiceResponse[*usecase.AuthOutput] {
	return guard(ctx, srv.log(ctx), "CreateGoogleUser", func() (usecase.ServiceResponse[*usecase.AuthOutput], error) {
		if input == nil {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrNullContent
		}
		if strings.TrimSpace(input.Email) == "" {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrEmptyEmail
		}

		provider := input.OAuthProvider
		if provider == "" {
			provider = entity.ProviderTypeGoogle
		}

		user := &entity.User{
			Email:         input.Email,
			FullName:      input.FullName,
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			PasswordHash:  entity.GoogleUserPasswordPlaceholder,
			OAuthProvider: provider,
			OAuthID:       input.OAuthID,
		}

		return srv.createAndSignIn(ctx, user)
	})
}

func (srv *userService) createAndSignIn(ctx context.Context, user *entity.User) (usecase.ServiceResponse[*usecase.AuthOutput], error) {
	exists, err := srv.userRepo.Exists(ctx, repository.Where(repository.UserFieldEmail, strings.ToLower(strings.TrimSpace(user.Email))))
	if err != nil {
		return usecase.ServiceResponse[*usecase.AuthOutput]{}, errors.Wrap(err, "failed to check user existence")
	}
	if exists {
		return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrUserAlreadyExists
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return usecase.ServiceResponse[*usecase.AuthOutput]{}, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered",
		slog.String("userID", user.ID.String()),
		slog.String("provider", user.OAuthProvider.String()),
	)

	publish(ctx, srv.publisher, srv.log(ctx), entity.NewEvent(entity.EventUserRegistered, user.ID.String(), map[string]any{
		"email":    user.Email,
		"provider": user.OAuthProvider.String(),
	}))

	pair := srv.tokens.IssueTokenPair(ctx, user, false)
	if !pair.Succeeded() {
		return usecase.Forward[*usecase.AuthOutput](pair), nil
	}

	return usecase.Created(&usecase.AuthOutput{
		User:         user,
		AccessToken:  pair.Content.AccessToken,
		RefreshToken: pair.Content.RefreshToken,
		ExpiresAt:    pair.Content.ExpiresAt,
	}), nil
}

// GetUserByEmail looks a user up by email.
func (srv *userService) GetUserByEmail(ctx context.Context, email string) usecase.ServiceResponse[*entity.User] {
	return guard(ctx, srv.log(ctx), "GetUserByEmail", func() (usecase.ServiceResponse[*entity.User], error) {
		if strings.TrimSpace(email) == "" {
			return usecase.ServiceResponse[*entity.User]{}, domainerrors.ErrEmptyEmail
		}

		user, err := srv.userRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return usecase.ServiceResponse[*entity.User]{}, domainerrors.ErrUserNotFound
		}
		if err != nil {
			return usecase.ServiceResponse[*entity.User]{}, errors.Wrap(err, "failed to find user by email")
		}

		return usecase.Ok(user), nil
	})
}

func (srv *userService) GetUserByID(ctx context.Context, id uuid.UUID) usecase.ServiceResponse[*entity.User] {
	return guard(ctx, srv.log(ctx), "GetUserByID", func() (usecase.ServiceResponse[*entity.User], error) {
		user, err := srv.userRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrUserNotFound) {
			return usecase.ServiceResponse[*entity.User]{}, domainerrors.ErrUserNotFound
		}
		if err != nil {
			return usecase.ServiceResponse[*entity.User]{}, errors.Wrap(err, "failed to find user by id")
		}

		return usecase.Ok(user), nil
	})
}

func (srv *userService) GetAll(ctx context.Context) usecase.ServiceResponse[[]*entity.User] {
	return guard(ctx, srv.log(ctx), "GetAll", func() (usecase.ServiceResponse[[]*entity.User], error) {
		users, err := srv.userRepo.ReadAll(ctx, nil)
		if err != nil {
			return usecase.ServiceResponse[[]*entity.User]{}, errors.Wrap(err, "failed to list users")
		}

		return usecase.Ok(users), nil
	})
}

// Login rejects disabled or locked accounts, verifies the credentials and
// hands off to the token usecase, which issues the tokens.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) usecase.ServiceResponse[*usecase.LoginOutput] {
	return guard(ctx, srv.log(ctx), "Login", func() (usecase.ServiceResponse[*usecase.LoginOutput], error) {
		if input == nil {
			return usecase.ServiceResponse[*usecase.LoginOutput]{}, domainerrors.ErrNullContent
		}

		user, err := srv.userRepo.FindByEmail(ctx, input.Email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return usecase.ServiceResponse[*usecase.LoginOutput]{}, domainerrors.ErrInvalidCredentials
		}
		if err != nil {
			return usecase.ServiceResponse[*usecase.LoginOutput]{}, errors.Wrap(err, "failed to find user")
		}

		now := srv.now()
		if user.SignIn.LoginDisabled {
			return usecase.ServiceResponse[*usecase.LoginOutput]{}, domainerrors.ErrSignInNotAllowed
		}
		if user.SignIn.IsLockedOut(now) {
			return usecase.ServiceResponse[*usecase.LoginOutput]{}, domainerrors.ErrLockedOut
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			// Failed attempts count toward lockout on this route too.
			if err := srv.userRepo.RecordFailedSignIn(ctx, user.ID, srv.maxFailedAttempts, now.Add(srv.lockoutDuration)); err != nil {
				srv.log(ctx).WarnContext(ctx, "Failed to record failed sign-in", slog.Any("error", err))
			}

			return usecase.ServiceResponse[*usecase.LoginOutput]{}, domainerrors.ErrInvalidCredentials
		}

		result := srv.tokens.GetToken(ctx, input.Email, input.Password, input.RememberMe)
		if !result.Succeeded() {
			message := result.Message
			if message == "" {
				message = domainerrors.ErrTokenGenerationFailed.Message()
			}
			resp := usecase.Fail[*usecase.LoginOutput](usecase.StatusUnauthorized, message)
			resp.ErrorCode = result.ErrorCode

			return resp, nil
		}
		if result.Content == nil || result.Content.AccessToken == "" {
			return usecase.ServiceResponse[*usecase.LoginOutput]{}, domainerrors.ErrTokenGenerationFailed
		}

		return usecase.Ok(&usecase.LoginOutput{
			AccessToken:  result.Content.AccessToken,
			RefreshToken: result.Content.RefreshToken,
			ExpiresAt:    result.Content.ExpiresAt,
			User:         result.Content.User,
		}), nil
	})
}
