package logstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/den5hade/notification/internal/domain/logentry"
	"github.com/den5hade/notification/internal/platform/httpclient"
	"github.com/den5hade/notification/internal/ports"
)

// Compile-time interface check.
var _ ports.LogStore = (*Client)(nil)

// Client is the outbound adapter for the external log store microservice.
// It implements [ports.LogStore].
//
// All methods translate between domain logentry types and the store's wire
// representation. HTTP errors are mapped to domain errors (ErrNotFound,
// ErrUnavailable, etc.) by [TranslateHTTPError].
//
// The underlying [httpclient.Client] provides circuit breaking, retry with
// exponential backoff, rate limiting, OpenTelemetry tracing, and health
// checking ([ports.HealthChecker]) for every outbound call.
type Client struct {
	req    *requester
	logger *slog.Logger
}

// NewClient creates a Client that sends requests through the given
// [httpclient.Client]. The client's BaseURL should point at the log store
// root (e.g. "http://logging-service:8000").
func NewClient(client *httpclient.Client, logger *slog.Logger) *Client {
	return &Client{
		req:    newRequester(client, logger),
		logger: logger,
	}
}

// CreateEntry stores a single entry via POST /api/v1/logs/ and returns it
// with the store-assigned ID and timestamp.
func (c *Client) CreateEntry(ctx context.Context, entry *logentry.Entry) (*logentry.Entry, error) {
	var dto readDTO
	if err := c.req.do(ctx, http.MethodPost, "/api/v1/logs/", http.StatusOK, toCreateDTO(entry), &dto); err != nil {
		return nil, err
	}
	stored := toDomainEntry(dto)
	return &stored, nil
}

// CreateEntries stores a batch of entries via POST /api/v1/logs/bulk.
func (c *Client) CreateEntries(ctx context.Context, entries []logentry.Entry) ([]logentry.Entry, error) {
	dtos := make([]createDTO, len(entries))
	for i := range entries {
		dtos[i] = toCreateDTO(&entries[i])
	}

	var resp []readDTO
	if err := c.req.do(ctx, http.MethodPost, "/api/v1/logs/bulk", http.StatusOK, dtos, &resp); err != nil {
		return nil, err
	}
	return toDomainEntryList(resp), nil
}

// ListEntries fetches entries from GET /api/v1/logs/ with the filter encoded
// as query parameters.
func (c *Client) ListEntries(ctx context.Context, filter logentry.Filter) ([]logentry.Entry, error) {
	path := "/api/v1/logs/" + filterQuery(filter, true)

	var dtos []readDTO
	if err := c.req.do(ctx, http.MethodGet, path, http.StatusOK, nil, &dtos); err != nil {
		return nil, err
	}
	return toDomainEntryList(dtos), nil
}

// GetEntry fetches a single entry from GET /api/v1/logs/{id}.
// Returns [domain.ErrNotFound] if the store returns 404.
func (c *Client) GetEntry(ctx context.Context, id int64) (*logentry.Entry, error) {
	path := fmt.Sprintf("/api/v1/logs/%d", id)

	var dto readDTO
	if err := c.req.do(ctx, http.MethodGet, path, http.StatusOK, nil, &dto); err != nil {
		return nil, err
	}
	entry := toDomainEntry(dto)
	return &entry, nil
}

// CountEntries fetches the total matching count from
// GET /api/v1/logs/count/total. Pagination fields are not sent.
func (c *Client) CountEntries(ctx context.Context, filter logentry.Filter) (int64, error) {
	path := "/api/v1/logs/count/total" + filterQuery(filter, false)

	var dto countDTO
	if err := c.req.do(ctx, http.MethodGet, path, http.StatusOK, nil, &dto); err != nil {
		return 0, err
	}
	return dto.TotalCount, nil
}

// ServiceStats fetches per-service entry counts from
// GET /api/v1/logs/stats/services.
func (c *Client) ServiceStats(ctx context.Context) (logentry.ServiceStats, error) {
	var stats logentry.ServiceStats
	if err := c.req.do(ctx, http.MethodGet, "/api/v1/logs/stats/services", http.StatusOK, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Cleanup deletes entries older than the given number of days via
// DELETE /api/v1/logs/cleanup and returns the deleted count.
func (c *Client) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	path := "/api/v1/logs/cleanup?days_old=" + strconv.Itoa(olderThanDays)

	var dto cleanupDTO
	if err := c.req.do(ctx, http.MethodDelete, path, http.StatusOK, nil, &dto); err != nil {
		return 0, err
	}
	return dto.DeletedCount, nil
}

// filterQuery converts a [logentry.Filter] to a URL query string (including
// the leading "?"). Zero-valued fields are not encoded; pagination is
// included only when withPaging is set. Returns an empty string if nothing
// is set.
func filterQuery(f logentry.Filter, withPaging bool) string {
	v := url.Values{}
	if withPaging {
		v.Set("skip", strconv.Itoa(f.Skip))
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.ServiceName != "" {
		v.Set("service_name", f.ServiceName)
	}
	if f.Method != "" {
		v.Set("method", f.Method)
	}
	if f.StatusCode != 0 {
		v.Set("status_code", strconv.Itoa(f.StatusCode))
	}
	if f.ClientIP != "" {
		v.Set("client_ip", f.ClientIP)
	}
	if f.Path != "" {
		v.Set("path", f.Path)
	}
	if !f.StartDate.IsZero() {
		v.Set("start_date", f.StartDate.Format(time.RFC3339))
	}
	if !f.EndDate.IsZero() {
		v.Set("end_date", f.EndDate.Format(time.RFC3339))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
