// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/domain/logentry"
	"github.com/den5hade/notification/internal/ports"
)

// Compile-time check that LogQueryService implements ports.LogQueryService.
var _ ports.LogQueryService = (*LogQueryService)(nil)

// LogQueryService implements ports.LogQueryService as a thin orchestration
// layer over the log store client. Entries are already redacted when they
// reach the store, so this service only normalizes input, logs, and forwards.
type LogQueryService struct {
	store  ports.LogStore
	logger *slog.Logger
}

// NewLogQueryService creates a LogQueryService backed by the given store client.
func NewLogQueryService(store ports.LogStore, logger *slog.Logger) *LogQueryService {
	return &LogQueryService{
		store:  store,
		logger: logger,
	}
}

// List returns entries matching the filter, newest first, with pagination
// clamped to sane bounds.
func (s *LogQueryService) List(ctx context.Context, filter logentry.Filter) ([]logentry.Entry, error) {
	filter = filter.Normalize()

	s.logger.InfoContext(ctx, "listing log entries",
		slog.Int("skip", filter.Skip),
		slog.Int("limit", filter.Limit),
	)

	entries, err := s.store.ListEntries(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list log entries",
			slog.String("operation", "List"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return entries, nil
}

// Get returns a single entry by its store ID.
func (s *LogQueryService) Get(ctx context.Context, id int64) (*logentry.Entry, error) {
	s.logger.InfoContext(ctx, "fetching log entry", slog.Int64("id", id))

	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch log entry",
			slog.String("operation", "Get"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return entry, nil
}

// Count returns the total number of entries matching the filter, ignoring
// pagination.
func (s *LogQueryService) Count(ctx context.Context, filter logentry.Filter) (int64, error) {
	total, err := s.store.CountEntries(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to count log entries",
			slog.String("operation", "Count"),
			slog.Any("error", err),
		)
		return 0, err
	}

	return total, nil
}

// Stats returns stored entry counts grouped by service name.
func (s *LogQueryService) Stats(ctx context.Context) (logentry.ServiceStats, error) {
	stats, err := s.store.ServiceStats(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch service stats",
			slog.String("operation", "Stats"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return stats, nil
}

// Cleanup deletes entries older than the given number of days and returns
// how many were removed.
func (s *LogQueryService) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays < 1 {
		return 0, fmt.Errorf("%w: days_old must be at least 1", domain.ErrValidation)
	}

	s.logger.InfoContext(ctx, "cleaning up old log entries", slog.Int("older_than_days", olderThanDays))

	deleted, err := s.store.Cleanup(ctx, olderThanDays)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to clean up log entries",
			slog.String("operation", "Cleanup"),
			slog.Int("older_than_days", olderThanDays),
			slog.Any("error", err),
		)
		return 0, err
	}

	s.logger.InfoContext(ctx, "log entries cleaned up",
		slog.Int("older_than_days", olderThanDays),
		slog.Int64("deleted", deleted),
	)

	return deleted, nil
}
