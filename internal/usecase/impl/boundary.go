// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"manero/internal/domain/entity"
	"manero/internal/domain/service"
	"manero/internal/errors"
	"manero/internal/usecase"
)

// guard runs a usecase body and turns its error, or a panic, into a failed
// envelope. Client errors are logged at info level, everything else at error.
func guard[T any](ctx context.Context, logger *slog.Logger, op string, fn func() (usecase.ServiceResponse[T], error)) (resp usecase.ServiceResponse[T]) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Recovered from panic", slog.String("op", op), slog.Any("panic", r))
			resp = usecase.FromError[T](errors.Errorf("panic in %s: %v", op, r))
		}
	}()

	resp, err := fn()
	if err == nil {
		return resp
	}

	resp = usecase.FromError[T](err)
	if resp.StatusCode == usecase.StatusInternalServerError {
		logger.ErrorContext(ctx, "Usecase failed", slog.String("op", op), slog.Any("error", err))
	} else {
		logger.InfoContext(ctx, "Usecase rejected request",
			slog.String("op", op),
			slog.String("code", resp.ErrorCode),
			slog.Any("error", err),
		)
	}

	return resp
}

// publish sends an event on a best-effort basis; the write it reports on has
// already committed.
func publish(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *entity.Event) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event",
			slog.String("type", string(event.Type)),
			slog.String("subject_id", event.SubjectID),
			slog.Any("error", err),
		)
	}
}
