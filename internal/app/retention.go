package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/den5hade/notification/internal/platform/config"
	"github.com/den5hade/notification/internal/ports"
)

// retentionRunTimeout bounds a single cleanup run against the log store.
const retentionRunTimeout = 5 * time.Minute

// RetentionJob periodically deletes old entries from the log store on a cron
// schedule. The store has no retention of its own, so without this job
// captured entries accumulate forever.
type RetentionJob struct {
	logs   ports.LogQueryService
	cfg    config.RetentionConfig
	logger *slog.Logger
	cron   *cron.Cron
}

// NewRetentionJob creates a RetentionJob. Call Start to begin scheduling.
func NewRetentionJob(logs ports.LogQueryService, cfg config.RetentionConfig, logger *slog.Logger) *RetentionJob {
	return &RetentionJob{
		logs:   logs,
		cfg:    cfg,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start registers the cleanup schedule and starts the cron runner. It is a
// no-op when retention is disabled.
func (j *RetentionJob) Start() error {
	if !j.cfg.Enabled {
		return nil
	}

	if _, err := j.cron.AddFunc(j.cfg.Schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("retention job started",
		slog.String("schedule", j.cfg.Schedule),
		slog.Int("days", j.cfg.Days),
	)
	return nil
}

// Stop halts the scheduler and waits for an in-flight run to finish, giving
// up when ctx expires.
func (j *RetentionJob) Stop(ctx context.Context) error {
	select {
	case <-j.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *RetentionJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), retentionRunTimeout)
	defer cancel()

	deleted, err := j.logs.Cleanup(ctx, j.cfg.Days)
	if err != nil {
		j.logger.ErrorContext(ctx, "retention cleanup failed",
			slog.Int("days", j.cfg.Days),
			slog.Any("error", err),
		)
		return
	}

	j.logger.InfoContext(ctx, "retention cleanup completed",
		slog.Int("days", j.cfg.Days),
		slog.Int64("deleted", deleted),
	)
}
