package middleware_test

import (
	"testing"

	"github.com/den5hade/notification/internal/adapters/http/middleware"
)

func TestExcludedPath(t *testing.T) {
	t.Parallel()

	excluded := []string{
		"/",
		"/health",
		"/health/",
		"/health/ready",
		"/metrics",
		"/docs",
		"/redoc",
		"/openapi.json",
		"/favicon.ico",
	}
	for _, path := range excluded {
		if !middleware.ExcludedPath(path) {
			t.Errorf("ExcludedPath(%q) = false, want true", path)
		}
	}

	captured := []string{
		"/api/v1/logs",
		"/api/v1/notifications/send",
		"/healthcheck",
		"/health/readiness",
		"/docs2",
	}
	for _, path := range captured {
		if middleware.ExcludedPath(path) {
			t.Errorf("ExcludedPath(%q) = true, want false", path)
		}
	}
}
