package middleware

import "strings"

// excludedPaths lists the endpoints never captured: health probes, metrics,
// API docs, and the root banner. Keys are normalized (no trailing slash).
var excludedPaths = map[string]bool{
	"/health":       true,
	"/health/ready": true,
	"/metrics":      true,
	"/docs":         true,
	"/redoc":        true,
	"/openapi.json": true,
	"/favicon.ico":  true,
	"/":             true,
}

// ExcludedPath reports whether the given request path is exempt from capture.
// Matching is exact after stripping a trailing slash, so "/health/" matches
// "/health" while "/healthz" does not.
func ExcludedPath(path string) bool {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return excludedPaths[path]
}
