package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/den5hade/notification/internal/domain/logentry"
	"github.com/den5hade/notification/internal/domain/redact"
	"github.com/den5hade/notification/internal/platform/config"
	"github.com/den5hade/notification/internal/ports"
)

// Capture returns middleware that records every non-excluded request as a
// redacted log entry and hands it to the dispatcher. The request flows:
//
//	excluded? -> skip | capture request -> forward -> capture response -> dispatch
//
// The middleware buffers the request body (restoring it for the handler) and
// wraps the ResponseWriter to observe the status code and response bytes.
// Exactly one entry is dispatched per non-excluded request, including when
// the handler panics; the panic is re-raised for the outer Recovery
// middleware after the entry is queued. Dispatching never blocks and never
// alters the response already being written.
func Capture(
	cfg config.CaptureConfig,
	patterns *redact.FieldPatterns,
	sanitizer *redact.Sanitizer,
	dispatcher ports.EntryDispatcher,
	logger *slog.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ExcludedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			entry := &logentry.Entry{
				ServiceName: cfg.ServiceName,
				Method:      r.Method,
				Path:        r.URL.Path,
				QueryParams: captureQuery(r.URL.Query(), patterns),
				Headers:     CaptureHeaders(r.Header, patterns),
				ClientIP:    clientIP(r),
				UserAgent:   r.UserAgent(),
				Timestamp:   start,
			}

			if cfg.LogRequestBody {
				entry.RequestBody = captureRequestBody(r, sanitizer)
			}

			cw := newCaptureWriter(w, sanitizer.MaxBodySize(), cfg.LogResponseBody)

			defer func() {
				if v := recover(); v != nil {
					// The outer Recovery middleware will turn this panic
					// into a 500; record the entry with that status first.
					if !cw.headerWritten {
						cw.statusCode = http.StatusInternalServerError
					}
					finishEntry(entry, cw, start, cfg.LogResponseBody, sanitizer)
					dispatcher.Enqueue(entry)
					panic(v)
				}
			}()

			next.ServeHTTP(cw, r)

			finishEntry(entry, cw, start, cfg.LogResponseBody, sanitizer)
			dispatcher.Enqueue(entry)

			if logger.Enabled(r.Context(), slog.LevelDebug) {
				logger.DebugContext(r.Context(), "request captured",
					slog.String("method", entry.Method),
					slog.String("path", entry.Path),
					slog.Int("status", entry.StatusCode),
					slog.Duration("processing_time", entry.ProcessingTime),
				)
			}
		})
	}
}

// finishEntry fills the response-side fields once the handler is done.
func finishEntry(entry *logentry.Entry, cw *captureWriter, start time.Time, logBody bool, sanitizer *redact.Sanitizer) {
	entry.StatusCode = cw.statusCode
	entry.ProcessingTime = time.Since(start)

	if !logBody {
		return
	}
	if cw.written > int64(sanitizer.MaxBodySize()) {
		// Report the true written length, not the truncated buffer size.
		entry.ResponseBody = redact.OversizePlaceholder(int(cw.written))
		return
	}
	entry.ResponseBody = sanitizer.Sanitize(cw.Header().Get("Content-Type"), cw.body.Bytes())
}

// captureRequestBody drains and restores the request body, returning its
// sanitized form. Read failures resolve to a placeholder, never an error.
func captureRequestBody(r *http.Request, sanitizer *redact.Sanitizer) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}

	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		r.Body = io.NopCloser(bytes.NewReader(body))
		return redact.ReadErrorPlaceholder(err)
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	return sanitizer.Sanitize(r.Header.Get("Content-Type"), body)
}

// captureQuery flattens query parameters, masking values under sensitive
// keys so tokens passed in the URL never reach the store in the clear.
// Repeated keys are joined with a comma.
func captureQuery(values url.Values, patterns *redact.FieldPatterns) map[string]string {
	if len(values) == 0 {
		return nil
	}

	out := make(map[string]string, len(values))
	for key, vals := range values {
		v := strings.Join(vals, ",")
		if patterns.Contains(key) {
			v = redact.MaskValue(v)
		}
		out[key] = v
	}
	return out
}

// clientIP extracts the originating client address, preferring forwarding
// headers set by reverse proxies over the socket peer address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// captureWriter extends responseWriter with bounded response body buffering.
// It stores at most limit+1 bytes so finishEntry can distinguish an
// at-the-limit body from an oversize one while the writer's written counter
// still reports the true response length.
type captureWriter struct {
	*responseWriter
	body        bytes.Buffer
	limit       int
	captureBody bool
}

func newCaptureWriter(w http.ResponseWriter, limit int, captureBody bool) *captureWriter {
	return &captureWriter{
		responseWriter: newResponseWriter(w),
		limit:          limit,
		captureBody:    captureBody,
	}
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.captureBody && cw.body.Len() <= cw.limit {
		if room := cw.limit + 1 - cw.body.Len(); len(b) <= room {
			cw.body.Write(b)
		} else {
			cw.body.Write(b[:room])
		}
	}
	return cw.responseWriter.Write(b)
}
