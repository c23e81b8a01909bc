package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/den5hade/notification/internal/adapters/http/handlers"
	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/domain/logentry"
)

// stubLogService implements ports.LogQueryService with per-method overrides.
type stubLogService struct {
	listFn    func(ctx context.Context, filter logentry.Filter) ([]logentry.Entry, error)
	getFn     func(ctx context.Context, id int64) (*logentry.Entry, error)
	countFn   func(ctx context.Context, filter logentry.Filter) (int64, error)
	statsFn   func(ctx context.Context) (logentry.ServiceStats, error)
	cleanupFn func(ctx context.Context, days int) (int64, error)
}

func (s *stubLogService) List(ctx context.Context, f logentry.Filter) ([]logentry.Entry, error) {
	return s.listFn(ctx, f)
}

func (s *stubLogService) Get(ctx context.Context, id int64) (*logentry.Entry, error) {
	return s.getFn(ctx, id)
}

func (s *stubLogService) Count(ctx context.Context, f logentry.Filter) (int64, error) {
	return s.countFn(ctx, f)
}

func (s *stubLogService) Stats(ctx context.Context) (logentry.ServiceStats, error) {
	return s.statsFn(ctx)
}

func (s *stubLogService) Cleanup(ctx context.Context, days int) (int64, error) {
	return s.cleanupFn(ctx, days)
}

// newLogRouter mounts the log handler the way the real router does.
func newLogRouter(svc *stubLogService) http.Handler {
	h := handlers.NewLogHandler(svc)
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/logs", h.ListLogs)
		r.Get("/logs/count/total", h.CountLogs)
		r.Get("/logs/stats/services", h.ServiceStats)
		r.Delete("/logs/cleanup", h.CleanupLogs)
		r.Get("/logs/{id}", h.GetLog)
	})
	return r
}

func TestListLogs(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		listFn: func(_ context.Context, f logentry.Filter) ([]logentry.Entry, error) {
			if f.ServiceName != "auth" || f.Skip != 20 || f.Limit != 10 {
				t.Errorf("filter = %+v, want service_name=auth skip=20 limit=10", f)
			}
			return []logentry.Entry{{
				ID:             1,
				ServiceName:    "auth",
				Method:         "GET",
				Path:           "/login",
				StatusCode:     200,
				ProcessingTime: 15 * time.Millisecond,
			}}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?service_name=auth&skip=20&limit=10", http.NoBody)
	newLogRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("got %d entries, want 1", len(body))
	}
	if body[0]["processing_time"] != float64(15) {
		t.Errorf("processing_time = %v, want 15 (milliseconds)", body[0]["processing_time"])
	}
}

func TestListLogsEmptyIsArray(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		listFn: func(context.Context, logentry.Filter) ([]logentry.Entry, error) {
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	newLogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/logs", http.NoBody))

	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestListLogsInvalidQuery(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		listFn: func(context.Context, logentry.Filter) ([]logentry.Entry, error) {
			t.Error("service must not be called for an invalid filter")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs?status_code=abc&start_date=yesterday", http.NoBody)
	newLogRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	details, _ := body["errors"].([]any)
	if len(details) != 2 {
		t.Errorf("got %d field errors, want 2: %v", len(details), body)
	}
}

func TestGetLog(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		getFn: func(_ context.Context, id int64) (*logentry.Entry, error) {
			if id != 42 {
				t.Errorf("id = %d, want 42", id)
			}
			return &logentry.Entry{ID: 42, Method: "POST"}, nil
		},
	}

	rec := httptest.NewRecorder()
	newLogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/logs/42", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["id"] != float64(42) {
		t.Errorf("id = %v, want 42", body["id"])
	}
}

func TestGetLogNotFound(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		getFn: func(context.Context, int64) (*logentry.Entry, error) {
			return nil, domain.ErrNotFound
		},
	}

	rec := httptest.NewRecorder()
	newLogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/logs/99", http.NoBody))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetLogInvalidID(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		getFn: func(context.Context, int64) (*logentry.Entry, error) {
			t.Error("service must not be called for a non-numeric id")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	newLogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/logs/abc", http.NoBody))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCountLogs(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		countFn: func(_ context.Context, f logentry.Filter) (int64, error) {
			if f.Method != "POST" {
				t.Errorf("filter method = %q, want POST", f.Method)
			}
			return 321, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/count/total?method=POST", http.NoBody)
	newLogRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["total_count"] != 321 {
		t.Errorf("total_count = %d, want 321", body["total_count"])
	}
}

func TestServiceStats(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		statsFn: func(context.Context) (logentry.ServiceStats, error) {
			return logentry.ServiceStats{"auth": 5, "billing": 2}, nil
		},
	}

	rec := httptest.NewRecorder()
	newLogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/logs/stats/services", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["auth"] != 5 || body["billing"] != 2 {
		t.Errorf("stats = %v", body)
	}
}

func TestCleanupLogs(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		cleanupFn: func(_ context.Context, days int) (int64, error) {
			if days != 7 {
				t.Errorf("days = %d, want 7", days)
			}
			return 99, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/logs/cleanup?days_old=7", http.NoBody)
	newLogRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["deleted_count"] != 99 {
		t.Errorf("deleted_count = %d, want 99", body["deleted_count"])
	}
}

func TestCleanupLogsDefaultsDays(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		cleanupFn: func(_ context.Context, days int) (int64, error) {
			if days != 30 {
				t.Errorf("days = %d, want default 30", days)
			}
			return 0, nil
		},
	}

	rec := httptest.NewRecorder()
	newLogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/logs/cleanup", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCleanupLogsInvalidDays(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		cleanupFn: func(context.Context, int) (int64, error) {
			t.Error("service must not be called for a non-numeric days_old")
			return 0, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/logs/cleanup?days_old=week", http.NoBody)
	newLogRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCleanupLogsUnavailableStore(t *testing.T) {
	t.Parallel()

	svc := &stubLogService{
		cleanupFn: func(context.Context, int) (int64, error) {
			return 0, domain.ErrUnavailable
		},
	}

	rec := httptest.NewRecorder()
	newLogRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/logs/cleanup", http.NoBody))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
