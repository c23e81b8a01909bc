package logstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/platform/httpclient"
)

// requester centralizes the HTTP request lifecycle against the log store:
// request creation, JSON marshaling, execution via httpclient.Client,
// response body cleanup, status code validation, error translation, and
// JSON decoding.
type requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

func newRequester(client *httpclient.Client, logger *slog.Logger) *requester {
	return &requester{client: client, logger: logger}
}

// do executes an HTTP request against the store's base URL.
//
// It marshals reqBody to JSON (if non-nil), sends the request, validates the
// status code matches wantStatus, and decodes the response body into
// respBody (if non-nil). On non-matching status codes, the response is
// passed to TranslateHTTPError.
func (r *requester) do(ctx context.Context, method, path string, wantStatus int, reqBody, respBody any) error {
	url := r.client.BaseURL() + path

	var req *http.Request
	var err error

	if reqBody != nil {
		var body []byte
		body, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
		}
		req, err = http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, http.NoBody)
	}
	if err != nil {
		return fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}

	return r.execute(req, wantStatus, respBody)
}

// closeBody closes an HTTP response body and logs on failure.
func (r *requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}

// execute sends the request, checks the status code, and optionally decodes
// the response body. It ensures resp.Body is always closed.
func (r *requester) execute(req *http.Request, wantStatus int, respBody any) error {
	resp, err := r.client.Do(req.Context(), req)
	if err != nil {
		// httpclient.Do can return both resp and err when retries are
		// exhausted on a retryable status (e.g. 5xx). Translate the HTTP
		// response into a domain error rather than returning the raw
		// retry error.
		if resp != nil {
			defer r.closeBody(req.Context(), resp)
			if resp.StatusCode != wantStatus {
				return TranslateHTTPError(resp)
			}
		}
		r.logger.ErrorContext(req.Context(), "request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", err.Error()),
		)
		// The store never responded: connection refused, DNS failure, client
		// timeout, or an open circuit breaker. All of these mean the store is
		// unreachable, the same outcome as a 5xx from the store itself.
		return fmt.Errorf("%s %s: %v: %w", req.Method, req.URL.Path, err, domain.ErrUnavailable)
	}
	defer r.closeBody(req.Context(), resp)

	if resp.StatusCode != wantStatus {
		translateErr := TranslateHTTPError(resp)
		r.logger.ErrorContext(req.Context(), "unexpected status",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
		)
		return translateErr
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("decoding response from %s %s: %w", req.Method, req.URL.Path, err)
		}
	}

	return nil
}
