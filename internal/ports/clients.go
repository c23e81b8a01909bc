package ports

import (
	"context"

	"github.com/den5hade/notification/internal/domain/logentry"
	"github.com/den5hade/notification/internal/domain/notification"
)

// LogStore defines the client port for the external log store service.
// Implemented by the logstore adapter; called by the dispatcher and the
// log query service. All redaction has already happened by the time an
// entry reaches this interface.
type LogStore interface {
	// CreateEntry stores a single captured entry and returns it with its
	// store-assigned ID and timestamp.
	CreateEntry(ctx context.Context, entry *logentry.Entry) (*logentry.Entry, error)

	// CreateEntries stores a batch of entries in one call.
	CreateEntries(ctx context.Context, entries []logentry.Entry) ([]logentry.Entry, error)

	// ListEntries returns entries matching the filter, newest first.
	// Pagination is controlled by Filter.Skip and Filter.Limit.
	ListEntries(ctx context.Context, filter logentry.Filter) ([]logentry.Entry, error)

	// GetEntry returns a single entry by its store ID.
	// Returns domain.ErrNotFound if the entry does not exist.
	GetEntry(ctx context.Context, id int64) (*logentry.Entry, error)

	// CountEntries returns the total number of entries matching the filter,
	// ignoring pagination.
	CountEntries(ctx context.Context, filter logentry.Filter) (int64, error)

	// ServiceStats returns stored entry counts grouped by service name.
	ServiceStats(ctx context.Context) (logentry.ServiceStats, error)

	// Cleanup deletes entries older than the given number of days and
	// returns how many were removed.
	Cleanup(ctx context.Context, olderThanDays int) (int64, error)
}

// NotificationSender delivers a composed email message. Implemented by the
// mailer adapter. Message composition is the application layer's concern;
// the sender only transports.
type NotificationSender interface {
	Send(ctx context.Context, msg notification.Message) error
}
