// Package health tracks the availability of this service's downstream
// dependencies (the log store client, and any future checkers) for the
// readiness probe. Capture keeps working while a dependency is down; the
// registry only decides what /health/ready reports.
package health

import (
	"context"
	"sync"

	"github.com/den5hade/notification/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthRegistry = (*Registry)(nil)

// Registry is a thread-safe implementation of [ports.HealthRegistry].
// Checkers are registered once during startup wiring and probed on every
// readiness request.
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New creates an empty health check registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a health checker to the registry. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll probes every registered checker and returns results keyed by
// checker name; a nil value means healthy. Checks run concurrently so one
// slow dependency does not delay the probe, and the registry lock is not
// held while they run.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	var (
		wg      sync.WaitGroup
		resMu   sync.Mutex
		results = make(map[string]error, len(checkers))
	)
	for _, c := range checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.HealthCheck(ctx)
			resMu.Lock()
			results[c.Name()] = err
			resMu.Unlock()
		}()
	}
	wg.Wait()

	return results
}
