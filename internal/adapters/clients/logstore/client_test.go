package logstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/den5hade/notification/internal/adapters/clients/logstore"
	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/domain/logentry"
	"github.com/den5hade/notification/internal/platform/config"
	"github.com/den5hade/notification/internal/platform/httpclient"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient spins up an httptest server around handler and returns a
// store client pointed at it. Retries are disabled so error cases fail fast.
func newTestClient(t *testing.T, handler http.HandlerFunc) *logstore.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.ClientConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
			Multiplier:      1.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}

	hc := httpclient.New(cfg, "logstore", nil, discardLogger())
	return logstore.NewClient(hc, discardLogger())
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestClient_CreateEntry(t *testing.T) {
	t.Parallel()

	entry := &logentry.Entry{
		ServiceName:    "notification-service",
		Method:         "POST",
		Path:           "/api/v1/users",
		StatusCode:     201,
		ProcessingTime: 42 * time.Millisecond,
		ClientIP:       "203.0.113.7",
		RequestBody:    `{"password":"se*****23"}`,
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/logs/" {
			t.Errorf("got %s %s, want POST /api/v1/logs/", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body["processing_time"] != float64(42) {
			t.Errorf("processing_time = %v, want 42 (milliseconds)", body["processing_time"])
		}
		if body["request_body"] != `{"password":"se*****23"}` {
			t.Errorf("request_body = %v", body["request_body"])
		}

		writeJSON(t, w, http.StatusOK, `{
			"id": 7,
			"service_name": "notification-service",
			"method": "POST",
			"path": "/api/v1/users",
			"status_code": 201,
			"processing_time": 42,
			"client_ip": "203.0.113.7",
			"timestamp": "2026-08-29T10:00:00Z"
		}`)
	})

	stored, err := client.CreateEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if stored.ID != 7 {
		t.Errorf("ID = %d, want 7", stored.ID)
	}
	if stored.ProcessingTime != 42*time.Millisecond {
		t.Errorf("ProcessingTime = %v, want 42ms", stored.ProcessingTime)
	}
	if stored.Timestamp.IsZero() {
		t.Error("Timestamp not populated from response")
	}
}

func TestClient_CreateEntries(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/logs/bulk" {
			t.Errorf("got %s %s, want POST /api/v1/logs/bulk", r.Method, r.URL.Path)
		}
		var body []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if len(body) != 2 {
			t.Errorf("batch size = %d, want 2", len(body))
		}
		writeJSON(t, w, http.StatusOK, `[{"id":1,"method":"GET"},{"id":2,"method":"POST"}]`)
	})

	entries := []logentry.Entry{{Method: "GET"}, {Method: "POST"}}
	stored, err := client.CreateEntries(context.Background(), entries)
	if err != nil {
		t.Fatalf("CreateEntries: %v", err)
	}
	if len(stored) != 2 || stored[0].ID != 1 || stored[1].ID != 2 {
		t.Errorf("stored = %+v, want IDs 1 and 2", stored)
	}
}

func TestClient_ListEntries(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/logs/" {
			t.Errorf("path = %s, want /api/v1/logs/", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("skip") != "20" || q.Get("limit") != "10" {
			t.Errorf("pagination = skip=%s limit=%s, want 20/10", q.Get("skip"), q.Get("limit"))
		}
		if q.Get("service_name") != "auth" {
			t.Errorf("service_name = %q, want auth", q.Get("service_name"))
		}
		if q.Get("status_code") != "500" {
			t.Errorf("status_code = %q, want 500", q.Get("status_code"))
		}
		if q.Has("path") {
			t.Error("empty path filter should not be encoded")
		}
		writeJSON(t, w, http.StatusOK, `[{"id":3,"service_name":"auth","status_code":500}]`)
	})

	got, err := client.ListEntries(context.Background(), logentry.Filter{
		Skip:        20,
		Limit:       10,
		ServiceName: "auth",
		StatusCode:  500,
	})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("got %+v, want one entry with ID 3", got)
	}
}

func TestClient_ListEntriesDateFilter(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("start_date"); got != "2026-08-01T00:00:00Z" {
			t.Errorf("start_date = %q, want RFC3339", got)
		}
		writeJSON(t, w, http.StatusOK, `[]`)
	})

	if _, err := client.ListEntries(context.Background(), logentry.Filter{StartDate: start}); err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
}

func TestClient_GetEntry(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/logs/17" {
			t.Errorf("path = %s, want /api/v1/logs/17", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, `{"id":17,"method":"GET","path":"/x"}`)
	})

	entry, err := client.GetEntry(context.Background(), 17)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry.ID != 17 {
		t.Errorf("ID = %d, want 17", entry.ID)
	}
}

func TestClient_GetEntryNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusNotFound, `{"detail":"Log entry not found"}`)
	})

	_, err := client.GetEntry(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want domain.ErrNotFound", err)
	}
}

func TestClient_CountEntries(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/logs/count/total" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Has("skip") || r.URL.Query().Has("limit") {
			t.Error("count request must not carry pagination")
		}
		writeJSON(t, w, http.StatusOK, `{"total_count":1234}`)
	})

	count, err := client.CountEntries(context.Background(), logentry.Filter{Skip: 20, Limit: 10})
	if err != nil {
		t.Fatalf("CountEntries: %v", err)
	}
	if count != 1234 {
		t.Errorf("count = %d, want 1234", count)
	}
}

func TestClient_ServiceStats(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/logs/stats/services" {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, `{"auth":10,"billing":3}`)
	})

	stats, err := client.ServiceStats(context.Background())
	if err != nil {
		t.Fatalf("ServiceStats: %v", err)
	}
	if stats["auth"] != 10 || stats["billing"] != 3 {
		t.Errorf("stats = %v", stats)
	}
}

func TestClient_Cleanup(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/logs/cleanup" {
			t.Errorf("got %s %s, want DELETE /api/v1/logs/cleanup", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("days_old"); got != "30" {
			t.Errorf("days_old = %q, want 30", got)
		}
		writeJSON(t, w, http.StatusOK, `{"deleted_count":57}`)
	})

	deleted, err := client.Cleanup(context.Background(), 30)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if deleted != 57 {
		t.Errorf("deleted = %d, want 57", deleted)
	}
}

func TestClient_ServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, `{"detail":"database connection lost"}`)
	})

	_, err := client.GetEntry(context.Background(), 1)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("error = %v, want domain.ErrUnavailable", err)
	}
}

func TestClient_UnreachableStoreIsUnavailable(t *testing.T) {
	t.Parallel()

	// Grab a URL nothing is listening on by closing the server up front.
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	cfg := &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
			Multiplier:      1.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
	client := logstore.NewClient(httpclient.New(cfg, "logstore", nil, discardLogger()), discardLogger())

	_, err := client.GetEntry(context.Background(), 1)
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("GetEntry error = %v, want domain.ErrUnavailable", err)
	}

	if _, err := client.CreateEntry(context.Background(), &logentry.Entry{ServiceName: "notification-service"}); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("CreateEntry error = %v, want domain.ErrUnavailable", err)
	}
}

func TestClient_ValidationErrorFromStore(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, `{"detail":"days_old must be positive"}`)
	})

	_, err := client.Cleanup(context.Background(), 5)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want domain.ErrValidation", err)
	}
}
