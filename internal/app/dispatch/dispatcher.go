// Package dispatch delivers captured log entries to the log store in the
// background. The capture middleware enqueues entries on the request path;
// a single worker goroutine drains the queue and performs the HTTP calls,
// so store latency and store outages never affect request handling.
package dispatch

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/den5hade/notification/internal/domain/logentry"
	"github.com/den5hade/notification/internal/platform/config"
	"github.com/den5hade/notification/internal/platform/telemetry"
	"github.com/den5hade/notification/internal/ports"
)

// Compile-time check that Dispatcher implements ports.EntryDispatcher.
var _ ports.EntryDispatcher = (*Dispatcher)(nil)

// Dispatcher is a bounded-queue, fire-and-forget entry dispatcher. Enqueue
// never blocks: when the queue is full the entry is dropped and counted.
// A backlog of queued entries flushes through the store's bulk endpoint.
// Delivery failures are logged and counted but never retried; the log store
// is an observability aid, not a system of record.
type Dispatcher struct {
	store       ports.LogStore
	logger      *slog.Logger
	metrics     *telemetry.Metrics
	queue       chan *logentry.Entry
	sendTimeout time.Duration

	closing atomic.Bool
	stop    chan struct{}
	done    chan struct{}
}

// NewDispatcher creates a Dispatcher and starts its worker goroutine.
// Call Shutdown to drain and stop it.
func NewDispatcher(store ports.LogStore, cfg config.DispatchConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		store:       store,
		logger:      logger,
		metrics:     metrics,
		queue:       make(chan *logentry.Entry, cfg.QueueSize),
		sendTimeout: cfg.SendTimeout,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	go d.run()
	return d
}

// Enqueue hands an entry off for asynchronous delivery. It returns
// immediately; if the queue is full or the dispatcher is shutting down the
// entry is dropped.
func (d *Dispatcher) Enqueue(entry *logentry.Entry) {
	if d.closing.Load() {
		d.drop(entry, "shutting_down")
		return
	}

	select {
	case d.queue <- entry:
	default:
		d.drop(entry, "queue_full")
	}
}

// Shutdown stops accepting new entries and waits for the worker to drain the
// queue. Returns ctx.Err() if the drain does not finish before ctx expires;
// the worker keeps draining in the background regardless.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	if d.closing.CompareAndSwap(false, true) {
		close(d.stop)
	}

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// maxBatchSize caps how many queued entries a single store call carries.
const maxBatchSize = 64

func (d *Dispatcher) run() {
	defer close(d.done)

	for {
		select {
		case entry := <-d.queue:
			d.send(d.collect(entry))
		case <-d.stop:
			// Drain whatever was queued before shutdown began.
			for {
				select {
				case entry := <-d.queue:
					d.send(d.collect(entry))
				default:
					return
				}
			}
		}
	}
}

// collect gathers everything already queued behind first, up to maxBatchSize,
// so a backlog flushes as one bulk call instead of one request per entry.
func (d *Dispatcher) collect(first *logentry.Entry) []*logentry.Entry {
	batch := []*logentry.Entry{first}
	for len(batch) < maxBatchSize {
		select {
		case entry := <-d.queue:
			batch = append(batch, entry)
		default:
			return batch
		}
	}
	return batch
}

func (d *Dispatcher) send(batch []*logentry.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	var err error
	if len(batch) == 1 {
		_, err = d.store.CreateEntry(ctx, batch[0])
	} else {
		entries := make([]logentry.Entry, len(batch))
		for i, e := range batch {
			entries[i] = *e
		}
		_, err = d.store.CreateEntries(ctx, entries)
	}

	if err != nil {
		d.logger.WarnContext(ctx, "failed to deliver log entries",
			slog.Int("count", len(batch)),
			slog.Any("error", err),
		)
		if d.metrics != nil {
			d.metrics.DispatchDroppedTotal.Add(ctx, int64(len(batch)),
				metric.WithAttributes(telemetry.AttrResult.String("send_failed")))
		}
		return
	}

	if d.metrics != nil {
		d.metrics.DispatchSentTotal.Add(ctx, int64(len(batch)))
	}
}

func (d *Dispatcher) drop(entry *logentry.Entry, reason string) {
	ctx := context.Background()
	d.logger.WarnContext(ctx, "dropping log entry",
		slog.String("method", entry.Method),
		slog.String("path", entry.Path),
		slog.String("reason", reason),
	)
	if d.metrics != nil {
		d.metrics.DispatchDroppedTotal.Add(ctx, 1,
			metric.WithAttributes(telemetry.AttrResult.String(reason)))
	}
}
