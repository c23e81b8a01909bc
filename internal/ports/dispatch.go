package ports

import (
	"context"

	"github.com/den5hade/notification/internal/domain/logentry"
)

// EntryDispatcher accepts captured entries from the request path and delivers
// them to the log store in the background. Implementations must never block
// the caller and must never surface delivery failures to it: when the queue
// is full the entry is dropped.
type EntryDispatcher interface {
	// Enqueue hands an entry off for asynchronous delivery. The entry must
	// not be mutated after the call.
	Enqueue(entry *logentry.Entry)

	// Shutdown stops accepting entries and drains what is already queued,
	// giving up when ctx expires.
	Shutdown(ctx context.Context) error
}
