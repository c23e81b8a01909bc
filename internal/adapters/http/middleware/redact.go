package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/den5hade/notification/internal/domain/redact"
	"github.com/den5hade/notification/internal/platform/logging"
)

// redactedHeaderValue replaces sensitive header values in captured entries.
const redactedHeaderValue = "<redacted>"

// RedactHeaders converts an http.Header map into a slice of slog.Attr values
// suitable for structured logging. Headers whose lowercase name appears in
// logging.SensitiveHeaders are replaced with "[REDACTED]"; all others are
// included as-is. Multi-value headers are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(headers))
	for key, vals := range headers {
		if logging.SensitiveHeaders[strings.ToLower(key)] {
			attrs = append(attrs, slog.String(key, "[REDACTED]"))
		} else {
			attrs = append(attrs, slog.String(key, strings.Join(vals, ",")))
		}
	}
	return attrs
}

// CaptureHeaders flattens request headers into the map stored on a log entry.
// A header is redacted when its name is in logging.SensitiveHeaders or
// matches the sensitive field pattern registry, so "X-Session-Token" is
// caught even though it is not on the fixed list. Multi-value headers are
// joined with a comma.
func CaptureHeaders(headers http.Header, patterns *redact.FieldPatterns) map[string]string {
	out := make(map[string]string, len(headers))
	for key, vals := range headers {
		if logging.SensitiveHeaders[strings.ToLower(key)] || patterns.Contains(key) {
			out[key] = redactedHeaderValue
		} else {
			out[key] = strings.Join(vals, ",")
		}
	}
	return out
}
