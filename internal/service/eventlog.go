package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crucial707/todo-api/internal/models"
)

// EventLogger persists service activity. Failures never fail the calling operation.
type EventLogger interface {
	Log(ctx context.Context, level, message string) error
}

type events struct {
	store EventLogger
}

func (e events) record(ctx context.Context, level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if level == models.LevelError {
		slog.WarnContext(ctx, msg)
	} else {
		slog.DebugContext(ctx, msg)
	}
	if e.store == nil {
		return
	}
	if err := e.store.Log(ctx, level, msg); err != nil {
		slog.ErrorContext(ctx, "event log write failed", "err", err)
	}
}
