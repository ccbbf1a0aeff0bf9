package impl

import (
	"context"
	"log/slog"
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

// tokenService implements the TokenUsecase interface.
type tokenService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokens            service.TokenService
	maxActiveSessions int
	maxFailedAttempts int
	lockoutDuration   time.Duration
	now               func() time.Time
	logger            *slog.Logger
}

// TokenServiceParams holds dependencies for TokenService, injected by Fx.
type TokenServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewTokenService is the constructor for tokenService.
func NewTokenService(params TokenServiceParams) usecase.TokenUsecase {
	srv := &tokenService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokens:           params.TokenService,
		now:              time.Now,
		logger:           params.Logger,
	}
	if params.Config != nil && params.Config.Auth != nil {
		srv.maxActiveSessions = params.Config.Auth.MaxActiveSessions
		srv.maxFailedAttempts = params.Config.Auth.MaxFailedAttempts
		srv.lockoutDuration = params.Config.Auth.LockoutDuration
	}

	return srv
}

func (srv *tokenService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetToken signs a user in with email and password. Checks run in this order:
// account disabled, locked out, password, two-factor.
func (srv *tokenService) GetToken(ctx context.Context, email, password string, rememberMe bool) usecase.ServiceResponse[*usecase.TokenOutput] {
	return guard(ctx, srv.log(ctx), "GetToken", func() (usecase.ServiceResponse[*usecase.TokenOutput], error) {
		user, err := srv.userRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, domainerrors.ErrSignInUserNotFound
		}
		if err != nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, errors.Wrap(err, "failed to find user")
		}

		if err := srv.checkSignIn(ctx, user, password); err != nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, err
		}

		out, err := srv.issue(ctx, user, rememberMe)
		if err != nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, err
		}

		srv.log(ctx).Info("User signed in", slog.String("userID", user.ID.String()))

		return usecase.Ok(out), nil
	})
}

func (srv *tokenService) checkSignIn(ctx context.Context, user *entity.User, password string) error {
	now := srv.now()

	if user.SignIn.LoginDisabled {
		return domainerrors.ErrSignInNotAllowed
	}
	if user.SignIn.IsLockedOut(now) {
		return domainerrors.ErrLockedOut
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		if err := srv.userRepo.RecordFailedSignIn(ctx, user.ID, srv.maxFailedAttempts, now.Add(srv.lockoutDuration)); err != nil {
			return errors.Wrap(err, "failed to record failed sign-in")
		}

		return domainerrors.ErrInvalidLoginAttempt
	}

	if user.SignIn.TwoFactorEnabled {
		return domainerrors.ErrTwoFactorRequired
	}

	if user.SignIn.AccessFailedCount > 0 || user.SignIn.LockoutEnd != nil {
		if err := srv.userRepo.ResetFailedSignIn(ctx, user.ID); err != nil {
			return errors.Wrap(err, "failed to reset failed sign-in")
		}
	}

	return nil
}

// IssueTokenPair mints and stores a token pair for an authenticated user.
func (srv *tokenService) IssueTokenPair(ctx context.Context, user *entity.User, rememberMe bool) usecase.ServiceResponse[*usecase.TokenOutput] {
	return guard(ctx, srv.log(ctx), "IssueTokenPair", func() (usecase.ServiceResponse[*usecase.TokenOutput], error) {
		if user == nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, domainerrors.ErrNullContent
		}

		out, err := srv.issue(ctx, user, rememberMe)
		if err != nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, err
		}

		return usecase.Ok(out), nil
	})
}

func (srv *tokenService) issue(ctx context.Context, user *entity.User, rememberMe bool) (*usecase.TokenOutput, error) {
	accessToken, expiresAt, err := srv.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, domainerrors.ErrTokenGenerationFailed.WrapMessage(err.Error())
	}

	rawRefresh, record, err := srv.newRefreshToken(user.ID, rememberMe)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.RefreshTokenRepo()

		if err := srv.enforceSessionLimit(ctx, tokenRepo, user.ID); err != nil {
			return err
		}

		return tokenRepo.CreateRefreshToken(ctx, record)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.TokenOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func (srv *tokenService) newRefreshToken(userID uuid.UUID, rememberMe bool) (string, *entity.RefreshToken, error) {
	raw, err := srv.tokens.GenerateRefreshToken()
	if err != nil {
		return "", nil, domainerrors.ErrTokenGenerationFailed.WrapMessage(err.Error())
	}

	return raw, &entity.RefreshToken{
		ID:         uuid.New(),
		UserID:     userID,
		TokenHash:  srv.tokens.HashToken(raw),
		ExpiresAt:  srv.now().Add(srv.tokens.RefreshTokenDuration(rememberMe)),
		RememberMe: rememberMe,
	}, nil
}

// enforceSessionLimit revokes the oldest active tokens so that one more fits
// under maxActiveSessions.
func (srv *tokenService) enforceSessionLimit(ctx context.Context, tokenRepo repository.RefreshTokenRepository, userID uuid.UUID) error {
	if srv.maxActiveSessions <= 0 {
		return nil
	}

	active, err := tokenRepo.FindActiveRefreshTokensByUserID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to list active sessions")
	}

	excess := len(active) - srv.maxActiveSessions + 1
	for i := 0; i < excess; i++ {
		if err := tokenRepo.RevokeRefreshToken(ctx, active[i].ID, nil); err != nil {
			return errors.Wrap(err, "failed to revoke oldest session")
		}
	}
	if excess > 0 {
		srv.log(ctx).Info("Session limit reached, revoked oldest sessions",
			slog.String("userID", userID.String()),
			slog.Int("revoked", excess),
		)
	}

	return nil
}

// RefreshToken rotates the presented refresh token. Revoking the old token and
// storing its replacement happen in one transaction, so a token can be
// exchanged at most once.
func (srv *tokenService) RefreshToken(ctx context.Context, accessToken, refreshToken string) usecase.ServiceResponse[*usecase.TokenOutput] {
	return guard(ctx, srv.log(ctx), "RefreshToken", func() (usecase.ServiceResponse[*usecase.TokenOutput], error) {
		claims, err := srv.tokens.ParseAccessToken(accessToken, false)
		if err != nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, err
		}
		if claims.Email == "" || claims.UserID == "" {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, domainerrors.ErrTokenClaimsMissing
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, domainerrors.ErrTokenUserIDMalformed
		}

		user, err := srv.userRepo.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, domainerrors.ErrUserNotFound
		}
		if err != nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, errors.Wrap(err, "failed to find user")
		}

		newAccess, expiresAt, err := srv.tokens.GenerateAccessToken(user)
		if err != nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, domainerrors.ErrTokenGenerationFailed.WrapMessage(err.Error())
		}

		var rawRefresh string
		err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			tokenRepo := repoFactory.RefreshTokenRepo()

			current, err := tokenRepo.FindActiveRefreshToken(ctx, userID, srv.tokens.HashToken(refreshToken))
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}
			if err != nil {
				return errors.Wrap(err, "failed to find refresh token")
			}

			raw, replacement, err := srv.newRefreshToken(userID, current.RememberMe)
			if err != nil {
				return err
			}
			if err := tokenRepo.CreateRefreshToken(ctx, replacement); err != nil {
				return errors.Wrap(err, "failed to store refresh token")
			}
			if err := tokenRepo.RevokeRefreshToken(ctx, current.ID, &replacement.ID); err != nil {
				return errors.Wrap(err, "failed to revoke refresh token")
			}
			if err := tokenRepo.DeleteExpiredRefreshTokens(ctx, userID); err != nil {
				return errors.Wrap(err, "failed to delete expired refresh tokens")
			}
			rawRefresh = raw

			return nil
		})
		if err != nil {
			return usecase.ServiceResponse[*usecase.TokenOutput]{}, err
		}

		return usecase.Ok(&usecase.TokenOutput{
			User:         user,
			AccessToken:  newAccess,
			RefreshToken: rawRefresh,
			ExpiresAt:    expiresAt,
		}), nil
	})
}

// GetUserIDFromToken fully validates an access token and returns its user id.
func (srv *tokenService) GetUserIDFromToken(ctx context.Context, accessToken string) usecase.ServiceResponse[uuid.UUID] {
	return guard(ctx, srv.log(ctx), "GetUserIDFromToken", func() (usecase.ServiceResponse[uuid.UUID], error) {
		claims, err := srv.tokens.ParseAccessToken(accessToken, true)
		if err != nil {
			return usecase.ServiceResponse[uuid.UUID]{}, err
		}
		if claims.UserID == "" {
			return usecase.ServiceResponse[uuid.UUID]{}, domainerrors.ErrTokenClaimsMissing
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return usecase.ServiceResponse[uuid.UUID]{}, domainerrors.ErrTokenUserIDMalformed
		}

		return usecase.Ok(userID), nil
	})
}

// RevokeToken revokes a stored refresh token. Revoking an already revoked
// token succeeds.
func (srv *tokenService) RevokeToken(ctx context.Context, refreshToken string) usecase.ServiceResponse[struct{}] {
	return guard(ctx, srv.log(ctx), "RevokeToken", func() (usecase.ServiceResponse[struct{}], error) {
		record, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, srv.tokens.HashToken(refreshToken))
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return usecase.ServiceResponse[struct{}]{}, domainerrors.ErrRefreshTokenNotFound
		}
		if err != nil {
			return usecase.ServiceResponse[struct{}]{}, errors.Wrap(err, "failed to find refresh token")
		}

		if err := srv.refreshTokenRepo.RevokeRefreshToken(ctx, record.ID, nil); err != nil {
			return usecase.ServiceResponse[struct{}]{}, errors.Wrap(err, "failed to revoke refresh token")
		}

		return usecase.NoContent[struct{}](), nil
	})
}
