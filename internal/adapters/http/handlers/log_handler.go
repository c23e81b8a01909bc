package handlers

import (
	"net/http"
	"strconv"

	"github.com/den5hade/notification/internal/adapters/http/dto"
	"github.com/den5hade/notification/internal/domain"
	"github.com/den5hade/notification/internal/ports"
)

// defaultCleanupDays is used when a cleanup request omits days_old.
const defaultCleanupDays = 30

// LogHandler handles HTTP requests for querying and cleaning up captured
// log entries. It is a read-side surface: entries are created only by the
// capture middleware, never through these endpoints.
type LogHandler struct {
	logs ports.LogQueryService
}

// NewLogHandler creates a new LogHandler with the given query service port.
func NewLogHandler(logs ports.LogQueryService) *LogHandler {
	return &LogHandler{logs: logs}
}

// ListLogs handles GET /api/v1/logs.
func (h *LogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	filter, err := parseLogFilter(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	entries, err := h.logs.List(r.Context(), filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLogEntryListResponse(entries))
}

// GetLog handles GET /api/v1/logs/{id}.
func (h *LogHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	entry, err := h.logs.Get(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLogEntryResponse(entry))
}

// CountLogs handles GET /api/v1/logs/count/total.
func (h *LogHandler) CountLogs(w http.ResponseWriter, r *http.Request) {
	filter, err := parseLogFilter(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	total, err := h.logs.Count(r.Context(), filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CountResponse{TotalCount: total})
}

// ServiceStats handles GET /api/v1/logs/stats/services.
func (h *LogHandler) ServiceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.logs.Stats(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// CleanupLogs handles DELETE /api/v1/logs/cleanup?days_old=N.
func (h *LogHandler) CleanupLogs(w http.ResponseWriter, r *http.Request) {
	days := defaultCleanupDays
	if raw := r.URL.Query().Get("days_old"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			dto.WriteErrorResponse(w, r, &domain.ValidationError{
				Fields: map[string]string{"days_old": "must be a valid integer"},
			})
			return
		}
		days = parsed
	}

	deleted, err := h.logs.Cleanup(r.Context(), days)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CleanupResponse{DeletedCount: deleted})
}
