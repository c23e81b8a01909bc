// Package handlers contains the inbound HTTP handlers: log entry queries,
// notification sends, health probes, and the service banner.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/den5hade/notification/internal/adapters/http/dto"
	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/domain/logentry"
)

// parseID extracts an int64 path parameter from the chi URL params.
func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{
			Fields: map[string]string{param: "must be a valid integer"},
		}
	}
	return id, nil
}

// parseLogFilter builds a logentry.Filter from list/count query parameters.
// Dates are RFC 3339. Invalid numeric or date values are rejected rather
// than silently ignored.
func parseLogFilter(r *http.Request) (logentry.Filter, error) {
	q := r.URL.Query()
	fields := map[string]string{}

	filter := logentry.Filter{
		ServiceName: q.Get("service_name"),
		Method:      q.Get("method"),
		ClientIP:    q.Get("client_ip"),
		Path:        q.Get("path"),
	}

	if raw := q.Get("status_code"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			fields["status_code"] = "must be a valid integer"
		} else {
			filter.StatusCode = code
		}
	}
	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			fields["skip"] = "must be a valid integer"
		} else {
			filter.Skip = skip
		}
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			fields["limit"] = "must be a valid integer"
		} else {
			filter.Limit = limit
		}
	}
	if raw := q.Get("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fields["start_date"] = "must be an RFC 3339 timestamp"
		} else {
			filter.StartDate = t
		}
	}
	if raw := q.Get("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fields["end_date"] = "must be an RFC 3339 timestamp"
		} else {
			filter.EndDate = t
		}
	}

	if len(fields) > 0 {
		return logentry.Filter{}, &domain.ValidationError{Fields: fields}
	}
	return filter, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
