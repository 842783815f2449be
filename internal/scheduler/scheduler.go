package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner deletes event log rows older than a cutoff.
type Pruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Retention runs the event log prune job on a cron schedule.
type Retention struct {
	cron    *cron.Cron
	pruner  Pruner
	keep    time.Duration
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	running bool
}

// NewRetention schedules pruning of events older than retentionDays at expr
// (standard five-field cron or a descriptor such as "@daily").
func NewRetention(pruner Pruner, expr string, retentionDays int) (*Retention, error) {
	if retentionDays <= 0 {
		return nil, fmt.Errorf("scheduler: retention must be at least one day, got %d", retentionDays)
	}
	r := &Retention{
		cron:    cron.New(),
		pruner:  pruner,
		keep:    time.Duration(retentionDays) * 24 * time.Hour,
		timeout: time.Minute,
		now:     time.Now,
	}
	if _, err := r.cron.AddFunc(expr, r.tick); err != nil {
		return nil, fmt.Errorf("scheduler: invalid cron expression %q: %w", expr, err)
	}
	return r, nil
}

// Start begins running the job in the background.
func (r *Retention) Start() {
	r.cron.Start()
	slog.Info("scheduler: event log retention started", "keep", r.keep.String())
}

// Stop stops the schedule and waits for a running prune to finish or ctx to end.
func (r *Retention) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (r *Retention) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	r.Prune(ctx)
}

// Prune removes expired events once. Overlapping runs are skipped.
func (r *Retention) Prune(ctx context.Context) (int64, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return 0, nil
	}
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	cutoff := r.now().Add(-r.keep)
	n, err := r.pruner.DeleteBefore(ctx, cutoff)
	if err != nil {
		slog.Error("scheduler: prune event log", "cutoff", cutoff, "err", err)
		return 0, err
	}
	slog.Info("scheduler: pruned event log", "removed", n, "cutoff", cutoff)
	return n, nil
}
