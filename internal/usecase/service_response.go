package usecase

import (
	"net/http"

	domainerrors "manero/internal/domain/errors"
	"manero/internal/errors"
)

// StatusCode is the outcome of a usecase call. The values mirror HTTP status
// codes so the delivery layer can pass them through.
type StatusCode int

const (
	StatusOk                  StatusCode = http.StatusOK
	StatusCreated             StatusCode = http.StatusCreated
	StatusNoContent           StatusCode = http.StatusNoContent
	StatusBadRequest          StatusCode = http.StatusBadRequest
	StatusUnauthorized        StatusCode = http.StatusUnauthorized
	StatusForbidden           StatusCode = http.StatusForbidden
	StatusNotFound            StatusCode = http.StatusNotFound
	StatusConflict            StatusCode = http.StatusConflict
	StatusTooManyRequests     StatusCode = http.StatusTooManyRequests
	StatusInternalServerError StatusCode = http.StatusInternalServerError
)

// String returns the enum name.
func (s StatusCode) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusCreated:
		return "Created"
	case StatusNoContent:
		return "NoContent"
	case StatusBadRequest:
		return "BadRequest"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusForbidden:
		return "Forbidden"
	case StatusNotFound:
		return "NotFound"
	case StatusConflict:
		return "Conflict"
	case StatusTooManyRequests:
		return "TooManyRequests"
	case StatusInternalServerError:
		return "InternalServerError"
	default:
		return http.StatusText(int(s))
	}
}

// IsSuccess reports whether the status is 2xx.
func (s StatusCode) IsSuccess() bool {
	return s >= 200 && s < 300
}

// ServiceResponse is the envelope every usecase method returns. Content is
// the zero value on failure; ErrorCode carries the business code of the
// domain error that caused a failure.
type ServiceResponse[T any] struct {
	StatusCode StatusCode
	Content    T
	Message    string
	ErrorCode  string
}

// Succeeded reports whether the call completed with a 2xx status.
func (r ServiceResponse[T]) Succeeded() bool {
	return r.StatusCode.IsSuccess()
}

// Ok wraps content with StatusOk.
func Ok[T any](content T) ServiceResponse[T] {
	return ServiceResponse[T]{StatusCode: StatusOk, Content: content}
}

// Created wraps content with StatusCreated.
func Created[T any](content T) ServiceResponse[T] {
	return ServiceResponse[T]{StatusCode: StatusCreated, Content: content}
}

// NoContent returns an empty StatusNoContent response.
func NoContent[T any]() ServiceResponse[T] {
	return ServiceResponse[T]{StatusCode: StatusNoContent}
}

// Fail builds a failed response with a message and no content.
func Fail[T any](status StatusCode, message string) ServiceResponse[T] {
	return ServiceResponse[T]{StatusCode: status, Message: message}
}

// FromError converts err into a failed response. Domain errors keep their
// status and message; anything else becomes an internal server error with a
// generic message.
func FromError[T any](err error) ServiceResponse[T] {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		return ServiceResponse[T]{
			StatusCode: StatusCode(appErr.HTTPCode()),
			Message:    appErr.Message(),
			ErrorCode:  appErr.ErrorCode(),
		}
	}

	return ServiceResponse[T]{
		StatusCode: StatusInternalServerError,
		Message:    domainerrors.ErrInternalError.Message(),
		ErrorCode:  domainerrors.ErrInternalError.ErrorCode(),
	}
}

// Forward re-types a failed response so it can be returned from a method
// with a different content type.
func Forward[T, U any](r ServiceResponse[U]) ServiceResponse[T] {
	return ServiceResponse[T]{StatusCode: r.StatusCode, Message: r.Message, ErrorCode: r.ErrorCode}
}
