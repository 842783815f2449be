package repo

import (
	"context"
	"database/sql"
	"time"
)

// EventLogRepo persists service activity messages.
type EventLogRepo struct {
	db *sql.DB
}

// NewEventLogRepo returns a new EventLogRepo.
func NewEventLogRepo(db *sql.DB) *EventLogRepo {
	return &EventLogRepo{db: db}
}

// Log records one event. level is info|error.
func (r *EventLogRepo) Log(ctx context.Context, level, message string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (level, message) VALUES ($1, $2)`,
		level, message,
	)
	return err
}

// DeleteBefore removes events created before cutoff and returns how many were removed.
func (r *EventLogRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
