// Package fanout provides a bounded-concurrency fan-out helper for
// application-layer orchestration. It runs a side-effecting function across a
// slice of items using a fixed number of worker goroutines and reports the
// per-item errors in input order.
//
// The helper is intentionally minimal: it manages goroutines, bounded
// concurrency via a semaphore channel, and context cancellation, and nothing
// else, keeping it reusable across delivery targets.
package fanout

import (
	"context"
	"sync"
)

// Run executes fn for each item in items using at most maxWorkers concurrent
// goroutines. The returned slice holds the error for each item at the same
// index as the input, nil on success.
//
// If ctx is canceled while a goroutine is waiting for a semaphore slot, that
// goroutine records ctx.Err() and does not call fn. Goroutines that have
// already acquired a slot run to completion (fn is responsible for checking
// ctx internally if it supports cancellation).
//
// Run blocks until all goroutines complete. If items is empty, it returns an
// empty non-nil slice immediately. maxWorkers must be >= 1.
func Run[T any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) error) []error {
	if len(items) == 0 {
		return []error{}
	}

	errs := make([]error, len(items))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}

			errs[idx] = fn(ctx, it)
		}(i, item)
	}

	wg.Wait()
	return errs
}
