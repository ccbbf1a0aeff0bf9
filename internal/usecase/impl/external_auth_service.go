package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "manero/internal/delivery/context"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/domain/repository"
	"manero/internal/domain/service"
	"manero/internal/errors"
	"manero/internal/usecase"

	"go.uber.org/fx"
)

// externalAuthService implements the ExternalAuthUsecase interface.
type externalAuthService struct {
	userRepo     repository.UserRepository
	users        usecase.UserUsecase
	tokens       usecase.TokenUsecase
	oauthService service.OAuthService
	idTokens     service.OAuthAuthService
	logger       *slog.Logger
}

// ExternalAuthServiceParams holds dependencies for ExternalAuthService, injected by Fx.
type ExternalAuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Users        usecase.UserUsecase
	Tokens       usecase.TokenUsecase
	OAuthService service.OAuthService
	IDTokens     service.OAuthAuthService
	Logger       *slog.Logger
}

// NewExternalAuthService is the constructor for externalAuthService.
func NewExternalAuthService(params ExternalAuthServiceParams) usecase.ExternalAuthUsecase {
	return &externalAuthService{
		userRepo:     params.UserRepo,
		users:        params.Users,
		tokens:       params.Tokens,
		oauthService: params.OAuthService,
		idTokens:     params.IDTokens,
		logger:       params.Logger,
	}
}

func (srv *externalAuthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AuthenticateWithGoogle exchanges the authorization code, fetches the
// profile and signs the matching account in, creating it on first use.
func (srv *externalAuthService) AuthenticateWithGoogle(ctx context.Context, code string) usecase.ServiceResponse[*usecase.AuthOutput] {
	return guard(ctx, srv.log(ctx), "AuthenticateWithGoogle", func() (usecase.ServiceResponse[*usecase.AuthOutput], error) {
		if strings.TrimSpace(code) == "" {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrOAuthCodeInvalid
		}

		accessToken, err := srv.oauthService.ExchangeCode(ctx, code)
		if err != nil {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrOAuthCodeInvalid.WrapMessage(err.Error())
		}

		profile, err := srv.oauthService.GetUserInfo(ctx, accessToken)
		if err != nil {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrOAuthUserInfoFailed.WrapMessage(err.Error())
		}

		return srv.findOrCreate(ctx, profile)
	})
}

// AuthenticateWithGoogleIDToken signs in with an ID token issued to a client
// of this application.
func (srv *externalAuthService) AuthenticateWithGoogleIDToken(ctx context.Context, idToken string) usecase.ServiceResponse[*usecase.AuthOutput] {
	return guard(ctx, srv.log(ctx), "AuthenticateWithGoogleIDToken", func() (usecase.ServiceResponse[*usecase.AuthOutput], error) {
		if strings.TrimSpace(idToken) == "" {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrOAuthTokenInvalid
		}

		profile, err := srv.idTokens.VerifyIDToken(ctx, idToken)
		if err != nil {
			return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrOAuthTokenInvalid.WrapMessage(err.Error())
		}

		return srv.findOrCreate(ctx, profile)
	})
}

// findOrCreate signs an existing account in (Ok) or creates it (Created).
func (srv *externalAuthService) findOrCreate(ctx context.Context, profile *service.OAuthUser) (usecase.ServiceResponse[*usecase.AuthOutput], error) {
	if profile == nil || strings.TrimSpace(profile.Email) == "" {
		return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrOAuthEmailMissing
	}
	if !profile.EmailVerified {
		return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrOAuthEmailUnverified
	}

	user, err := srv.userRepo.FindByEmail(ctx, profile.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Info("Creating account for external identity", slog.String("provider", profile.Provider.String()))

		return srv.users.CreateGoogleUser(ctx, &usecase.OAuthRegisterInput{
			Email:         profile.Email,
			OAuthID:       profile.ID,
			OAuthProvider: profile.Provider,
			FullName:      profile.Name,
			FirstName:     profile.GivenName,
			LastName:      profile.FamilyName,
		}), nil
	}
	if err != nil {
		return usecase.ServiceResponse[*usecase.AuthOutput]{}, errors.Wrap(err, "failed to find user")
	}

	if user.SignIn.LoginDisabled {
		return usecase.ServiceResponse[*usecase.AuthOutput]{}, domainerrors.ErrSignInNotAllowed
	}

	pair := srv.tokens.IssueTokenPair(ctx, user, false)
	if !pair.Succeeded() {
		return usecase.Forward[*usecase.AuthOutput](pair), nil
	}

	return usecase.Ok(&usecase.AuthOutput{
		User:         user,
		AccessToken:  pair.Content.AccessToken,
		RefreshToken: pair.Content.RefreshToken,
		ExpiresAt:    pair.Content.ExpiresAt,
	}), nil
}

