// Package logstore implements the outbound adapter for the external log
// store microservice. It translates between the store's wire representation
// and the logentry domain types, and maps HTTP failures to domain errors.
package logstore

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/den5hade/notification/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// errorDetail represents the store's error envelope ({"detail": "..."}).
// The detail field may also be a structured validation document; anything
// that is not a plain string is ignored and the status text is used instead.
type errorDetail struct {
	Detail json.RawMessage `json:"detail"`
}

// TranslateHTTPError maps an HTTP error response from the log store to a
// domain error. The store wraps error messages in a "detail" field.
func TranslateHTTPError(resp *http.Response) error {
	detail := parseDetail(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%s: %w", detail, domain.ErrConflict)

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", detail, domain.ErrForbidden)

	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// parseDetail attempts to read the detail string from the response body.
// Returns an empty string if the body is missing, not JSON, or the detail
// field is not a string.
func parseDetail(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return ""
	}

	var ed errorDetail
	if err := json.Unmarshal(body, &ed); err != nil {
		return ""
	}

	var detail string
	if err := json.Unmarshal(ed.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
