package usecase

import (
	"context"

	"manero/internal/domain/entity"
	"manero/internal/errors"
)

// LabelUsecase keeps the printable QR label of every product in object
// storage, driven by catalog events.
type LabelUsecase interface {
	HandleEvent(ctx context.Context, event *entity.Event) error
}

// RetryableError marks a failure that should be redelivered by the broker.
type RetryableError struct {
	err error
}

// NewRetryableError wraps err as retryable.
func NewRetryableError(err error) error {
	return &RetryableError{err: err}
}

func (e *RetryableError) Error() string {
	return "retryable: " + e.err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.err
}

// IsRetryable reports whether err, or anything it wraps, is retryable.
func IsRetryable(err error) bool {
	var re *RetryableError

	return errors.As(err, &re)
}
