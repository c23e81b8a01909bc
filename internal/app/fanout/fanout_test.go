package fanout_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/den5hade/notification/internal/app/fanout"
)

func TestRun_EmptyItems(t *testing.T) {
	t.Parallel()

	errs := fanout.Run(context.Background(), 5, []int{}, func(_ context.Context, _ int) error {
		t.Fatal("fn should not be called for empty items")
		return nil
	})

	if errs == nil {
		t.Fatal("expected non-nil slice for empty items")
	}
	if len(errs) != 0 {
		t.Fatalf("len(errs) = %d, want 0", len(errs))
	}
}

func TestRun_AllSucceed(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}
	var calls atomic.Int32

	errs := fanout.Run(context.Background(), 3, items, func(_ context.Context, _ int) error {
		calls.Add(1)
		return nil
	})

	if len(errs) != len(items) {
		t.Fatalf("len(errs) = %d, want %d", len(errs), len(items))
	}
	if got := calls.Load(); got != int32(len(items)) {
		t.Fatalf("fn called %d times, want %d", got, len(items))
	}
	for i, err := range errs {
		if err != nil {
			t.Errorf("errs[%d] = %v, want nil", i, err)
		}
	}
}

func TestRun_PartialFailure(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	items := []int{1, 2, 3}

	errs := fanout.Run(context.Background(), 3, items, func(_ context.Context, n int) error {
		if n == 2 {
			return errBoom
		}
		return nil
	})

	if errs[0] != nil {
		t.Errorf("errs[0] = %v, want nil", errs[0])
	}
	if !errors.Is(errs[1], errBoom) {
		t.Errorf("errs[1] = %v, want %v", errs[1], errBoom)
	}
	if errs[2] != nil {
		t.Errorf("errs[2] = %v, want nil", errs[2])
	}
}

func TestRun_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	// Per-item errors keyed to the input so out-of-order completion shows.
	items := []time.Duration{
		30 * time.Millisecond,
		10 * time.Millisecond,
		20 * time.Millisecond,
	}

	errs := fanout.Run(context.Background(), 3, items, func(_ context.Context, d time.Duration) error {
		time.Sleep(d)
		if d == 10*time.Millisecond {
			return errors.New("middle")
		}
		return nil
	})

	if errs[0] != nil || errs[2] != nil {
		t.Errorf("errs = %v, want failure only at index 1", errs)
	}
	if errs[1] == nil {
		t.Error("errs[1] = nil, want error for the 10ms item")
	}
}

func TestRun_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	const maxWorkers = 3
	const totalItems = 15

	var peak atomic.Int32
	var active atomic.Int32

	items := make([]int, totalItems)
	for i := range items {
		items[i] = i
	}

	errs := fanout.Run(context.Background(), maxWorkers, items, func(_ context.Context, _ int) error {
		cur := active.Add(1)
		defer active.Add(-1)

		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}

		time.Sleep(10 * time.Millisecond)
		return nil
	})

	if len(errs) != totalItems {
		t.Fatalf("got %d errors, want %d", len(errs), totalItems)
	}
	if p := peak.Load(); p > maxWorkers {
		t.Fatalf("peak concurrency %d exceeded maxWorkers %d", p, maxWorkers)
	}
}

func TestRun_ContextCancellation_BeforeAcquire(t *testing.T) {
	t.Parallel()

	// 1 worker with 3 items; cancel while items are waiting for the semaphore.
	ctx, cancel := context.WithCancel(context.Background())

	items := []int{1, 2, 3}

	errs := fanout.Run(ctx, 1, items, func(_ context.Context, n int) error {
		if n == 1 {
			cancel()
			time.Sleep(50 * time.Millisecond)
		}
		return nil
	})

	var canceledCount int
	for _, err := range errs {
		if errors.Is(err, context.Canceled) {
			canceledCount++
		}
	}

	if canceledCount == 0 {
		t.Error("expected at least one context.Canceled error")
	}
}

func TestRun_MaxWorkersExceedsItems(t *testing.T) {
	t.Parallel()

	items := []int{1, 2}

	errs := fanout.Run(context.Background(), 100, items, func(_ context.Context, _ int) error {
		return nil
	})

	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2", len(errs))
	}
}
