package ports

import (
	"context"

	"github.com/den5hade/notification/internal/domain/logentry"
	"github.com/den5hade/notification/internal/domain/notification"
)

// LogQueryService defines the service port for read and cleanup access to
// captured log entries. Implemented by the application layer as a thin
// passthrough to the LogStore client; it owns no redaction logic because
// entries were redacted at capture time.
type LogQueryService interface {
	// List returns entries matching the filter. The filter's pagination is
	// normalized (skip >= 0, limit capped at logentry.MaxPageSize) before
	// the store is queried.
	// Returns domain.ErrUnavailable when the store cannot be reached.
	List(ctx context.Context, filter logentry.Filter) ([]logentry.Entry, error)

	// Get returns a single entry by ID.
	// Returns domain.ErrNotFound if the entry does not exist and
	// domain.ErrUnavailable when the store cannot be reached.
	Get(ctx context.Context, id int64) (*logentry.Entry, error)

	// Count returns the number of entries matching the filter.
	Count(ctx context.Context, filter logentry.Filter) (int64, error)

	// Stats returns stored entry counts grouped by service name.
	Stats(ctx context.Context) (logentry.ServiceStats, error)

	// Cleanup deletes entries older than the given number of days and
	// returns how many were removed.
	// Returns domain.ErrValidation if olderThanDays < 1.
	Cleanup(ctx context.Context, olderThanDays int) (int64, error)
}

// NotificationService defines the service port for sending notification
// emails. Implemented by the application layer on top of NotificationSender.
type NotificationService interface {
	// SendNotification composes and delivers the email for a notification
	// request. Returns domain.ErrValidation for unknown tasks and
	// domain.ErrUnavailable when delivery fails.
	SendNotification(ctx context.Context, req notification.Request) error

	// SendSupportTicket delivers the user confirmation and the support-team
	// alert for a ticket. The two sends run concurrently with partial
	// success semantics; per-recipient outcomes are reported in the result.
	SendSupportTicket(ctx context.Context, ticket notification.SupportTicket) (*notification.TicketResult, error)
}
