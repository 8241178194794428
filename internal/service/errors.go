package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/labtrack/internal/events"
	"github.com/spec-kit/labtrack/internal/repository"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// mapRepoError converts repository sentinels into API-facing domain errors.
func mapRepoError(err error, resource string, id int64) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	case errors.Is(err, repository.ErrConflict):
		return apperrors.NewConflict(resource+" already exists", nil)
	case errors.Is(err, repository.ErrInsufficientStock):
		return apperrors.NewValidationError("insufficient stock", map[string]any{"quantity_change": "would make quantity negative"})
	default:
		return fmt.Errorf("%s store: %w", resource, err)
	}
}

// emit publishes event and logs delivery failures. Events never fail the
// operation that produced them.
func emit(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
