// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/den5hade/notification/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given; the capture middleware
// skips the excluded paths (health probes, banner) on its own.
func NewRouter(
	logHandler *handlers.LogHandler,
	notificationHandler *handlers.NotificationHandler,
	healthHandler *handlers.HealthHandler,
	rootHandler *handlers.RootHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Service banner and health endpoints (outside /api/v1 prefix).
	r.Get("/", rootHandler.Banner)
	r.Get("/health", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Captured log entry queries. Fixed segments are registered before
		// the {id} wildcard so chi routes them correctly.
		r.Get("/logs", logHandler.ListLogs)
		r.Get("/logs/count/total", logHandler.CountLogs)
		r.Get("/logs/stats/services", logHandler.ServiceStats)
		r.Delete("/logs/cleanup", logHandler.CleanupLogs)
		r.Get("/logs/{id}", logHandler.GetLog)

		// Notification sends.
		r.Post("/notifications/send", notificationHandler.SendNotification)
		r.Post("/notifications/support-ticket", notificationHandler.SendSupportTicket)
	})

	return r
}
