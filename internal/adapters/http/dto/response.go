package dto

import (
	"time"

	"github.com/den5hade/notification/internal/domain/logentry"
	"github.com/den5hade/notification/internal/domain/notification"
)

// LogEntryResponse is the wire representation of a stored log entry.
// Processing time is reported in integer milliseconds, matching the store.
type LogEntryResponse struct {
	ID             int64             `json:"id"`
	ServiceName    string            `json:"service_name"`
	Method         string            `json:"method"`
	Path           string            `json:"path"`
	QueryParams    map[string]string `json:"query_params,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	RequestBody    string            `json:"request_body,omitempty"`
	ResponseBody   string            `json:"response_body,omitempty"`
	StatusCode     int               `json:"status_code"`
	ClientIP       string            `json:"client_ip,omitempty"`
	UserAgent      string            `json:"user_agent,omitempty"`
	ProcessingTime int64             `json:"processing_time"`
	Timestamp      time.Time         `json:"timestamp"`
}

// ToLogEntryResponse converts a domain entry to its response form.
func ToLogEntryResponse(e *logentry.Entry) LogEntryResponse {
	return LogEntryResponse{
		ID:             e.ID,
		ServiceName:    e.ServiceName,
		Method:         e.Method,
		Path:           e.Path,
		QueryParams:    e.QueryParams,
		Headers:        e.Headers,
		RequestBody:    e.RequestBody,
		ResponseBody:   e.ResponseBody,
		StatusCode:     e.StatusCode,
		ClientIP:       e.ClientIP,
		UserAgent:      e.UserAgent,
		ProcessingTime: e.ProcessingTime.Milliseconds(),
		Timestamp:      e.Timestamp,
	}
}

// ToLogEntryListResponse converts a list of domain entries. Always returns a
// non-nil slice so an empty result serializes as [] rather than null.
func ToLogEntryListResponse(entries []logentry.Entry) []LogEntryResponse {
	out := make([]LogEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLogEntryResponse(&entries[i])
	}
	return out
}

// CountResponse is the envelope of GET /api/v1/logs/count/total.
type CountResponse struct {
	TotalCount int64 `json:"total_count"`
}

// CleanupResponse is the envelope of DELETE /api/v1/logs/cleanup.
type CleanupResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// NotificationAcceptedResponse acknowledges a queued notification send.
type NotificationAcceptedResponse struct {
	Message string `json:"message"`
}

// SupportTicketResponse reports per-recipient outcomes of a support-ticket
// send.
type SupportTicketResponse struct {
	TicketID     string `json:"ticket_id"`
	UserNotified bool   `json:"user_notified"`
	TeamNotified bool   `json:"team_notified"`
}

// ToSupportTicketResponse converts a domain ticket result.
func ToSupportTicketResponse(res *notification.TicketResult) SupportTicketResponse {
	return SupportTicketResponse{
		TicketID:     res.TicketID,
		UserNotified: res.UserNotified,
		TeamNotified: res.TeamNotified,
	}
}
