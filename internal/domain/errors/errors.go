package errors

import (
	"net/http"

	"manero/internal/errors"
)

// AppError is an error that knows how it should be presented to a client.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // Client facing message
	Details() string   // Optional detail
}

// BaseError is the default AppError implementation.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context while keeping it
// matchable through errors.As.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// WithMessage returns a copy carrying a different client facing message.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// WithDetails returns a copy carrying detail information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches two BaseErrors by error code so copies made with WithMessage or
// WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// Predefined error types
var (
	// User
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found.",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"User already exists.",
		"",
	)

	ErrEmptyEmail = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_REQUIRED",
		"Email cannot be null or empty.",
		"",
	)

	ErrNullContent = NewBaseError(
		http.StatusBadRequest,
		"CONTENT_REQUIRED",
		"Content cannot be null.",
		"",
	)

	ErrPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_MISMATCH",
		"Password and Confirm Password must match.",
		"",
	)

	// Sign-in
	ErrSignInUserNotFound = NewBaseError(
		http.StatusUnauthorized,
		"SIGNIN_USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrLockedOut = NewBaseError(
		http.StatusUnauthorized,
		"SIGNIN_LOCKED_OUT",
		"User account is locked out.",
		"",
	)

	ErrSignInNotAllowed = NewBaseError(
		http.StatusUnauthorized,
		"SIGNIN_NOT_ALLOWED",
		"User is not allowed to login.",
		"",
	)

	ErrTwoFactorRequired = NewBaseError(
		http.StatusUnauthorized,
		"SIGNIN_TWO_FACTOR_REQUIRED",
		"Login requires two-factor authentication.",
		"",
	)

	ErrInvalidLoginAttempt = NewBaseError(
		http.StatusUnauthorized,
		"SIGNIN_FAILED",
		"Invalid login attempt.",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrTokenGenerationFailed = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_GENERATION_FAILED",
		"Failed to generate a token",
		"",
	)

	// Tokens
	ErrTokenClaimsMissing = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_CLAIMS_MISSING",
		"Invalid token: email or user ID claim missing.",
		"",
	)

	ErrTokenUserIDMalformed = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_USER_ID_MALFORMED",
		"Invalid token: user ID claim is not a valid UUID.",
		"",
	)

	ErrAccessTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"ACCESS_TOKEN_INVALID",
		"Invalid access token.",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid refresh token.",
		"",
	)

	ErrRefreshTokenNotFound = NewBaseError(
		http.StatusNotFound,
		"REFRESH_TOKEN_NOT_FOUND",
		"Refresh token not found.",
		"",
	)

	// OAuth
	ErrOAuthCodeInvalid = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_CODE_INVALID",
		"Failed to exchange authorization code.",
		"",
	)

	ErrOAuthUserInfoFailed = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_USERINFO_FAILED",
		"Failed to fetch Google user with token.",
		"",
	)

	ErrOAuthTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_TOKEN_INVALID",
		"Invalid ID token.",
		"",
	)

	ErrOAuthEmailMissing = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_EMAIL_MISSING",
		"The identity provider did not return an email address.",
		"",
	)

	ErrOAuthEmailUnverified = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_EMAIL_UNVERIFIED",
		"The identity provider has not verified this email address.",
		"",
	)

	// Catalog
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found.",
		"",
	)

	ErrProductAlreadyExists = NewBaseError(
		http.StatusConflict,
		"PRODUCT_ALREADY_EXISTS",
		"A product with the same name already exists.",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"Category not found.",
		"",
	)

	ErrCategoryAlreadyExists = NewBaseError(
		http.StatusConflict,
		"CATEGORY_ALREADY_EXISTS",
		"A category with the same name already exists.",
		"",
	)

	ErrNoProductsInCategory = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_EMPTY",
		"No products found for the category.",
		"",
	)

	ErrSearchNoMatch = NewBaseError(
		http.StatusNotFound,
		"SEARCH_NO_MATCH",
		"No product or category matches the search term.",
		"",
	)

	ErrInvalidPriceRange = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PRICE_RANGE",
		"Minimum price must be non-negative and not greater than maximum price.",
		"",
	)

	ErrImageRejected = NewBaseError(
		http.StatusBadRequest,
		"IMAGE_REJECTED",
		"Image must be a non-empty png, jpeg, gif or webp file within the size limit.",
		"",
	)

	// General
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed.",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication is required.",
		"",
	)

	ErrTooManyRequests = NewBaseError(
		http.StatusTooManyRequests,
		"RATE_LIMITED",
		"Too many requests. Please slow down.",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"An unexpected error occurred.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found.",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource already exists.",
		"",
	)
)

// DatabaseExecuteError represents a failed statement. It implements AppError
// so it surfaces as a 500 without leaking the driver message.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed."
}

func (e *DatabaseExecuteError) Details() string {
	return e.details
}
