package logstore

import (
	"time"

	"github.com/den5hade/notification/internal/domain/logentry"
)

// createDTO is the wire representation of a new log entry
// (POST /api/v1/logs/). Processing time travels as integer milliseconds.
type createDTO struct {
	ServiceName    string            `json:"service_name"`
	Method         string            `json:"method"`
	Path           string            `json:"path"`
	QueryParams    map[string]string `json:"query_params,omitempty"`
	RequestBody    string            `json:"request_body,omitempty"`
	ResponseBody   string            `json:"response_body,omitempty"`
	StatusCode     int               `json:"status_code"`
	ProcessingTime int64             `json:"processing_time"`
	ClientIP       string            `json:"client_ip,omitempty"`
	UserAgent      string            `json:"user_agent,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
}

// readDTO is the wire representation of a stored log entry: the create
// fields plus the store-assigned ID and timestamp.
type readDTO struct {
	ID             int64             `json:"id"`
	ServiceName    string            `json:"service_name"`
	Method         string            `json:"method"`
	Path           string            `json:"path"`
	QueryParams    map[string]string `json:"query_params,omitempty"`
	RequestBody    string            `json:"request_body,omitempty"`
	ResponseBody   string            `json:"response_body,omitempty"`
	StatusCode     int               `json:"status_code"`
	ProcessingTime int64             `json:"processing_time"`
	ClientIP       string            `json:"client_ip,omitempty"`
	UserAgent      string            `json:"user_agent,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

// countDTO is the envelope of GET /api/v1/logs/count/total.
type countDTO struct {
	TotalCount int64 `json:"total_count"`
}

// cleanupDTO is the envelope of DELETE /api/v1/logs/cleanup.
type cleanupDTO struct {
	DeletedCount int64 `json:"deleted_count"`
}

// toCreateDTO converts a domain entry to its wire form.
func toCreateDTO(e *logentry.Entry) createDTO {
	return createDTO{
		ServiceName:    e.ServiceName,
		Method:         e.Method,
		Path:           e.Path,
		QueryParams:    e.QueryParams,
		RequestBody:    e.RequestBody,
		ResponseBody:   e.ResponseBody,
		StatusCode:     e.StatusCode,
		ProcessingTime: e.ProcessingTime.Milliseconds(),
		ClientIP:       e.ClientIP,
		UserAgent:      e.UserAgent,
		Headers:        e.Headers,
	}
}

// toDomainEntry converts a stored wire entry back to the domain type.
func toDomainEntry(d readDTO) logentry.Entry {
	return logentry.Entry{
		ID:             d.ID,
		ServiceName:    d.ServiceName,
		Method:         d.Method,
		Path:           d.Path,
		QueryParams:    d.QueryParams,
		RequestBody:    d.RequestBody,
		ResponseBody:   d.ResponseBody,
		StatusCode:     d.StatusCode,
		ProcessingTime: time.Duration(d.ProcessingTime) * time.Millisecond,
		ClientIP:       d.ClientIP,
		UserAgent:      d.UserAgent,
		Headers:        d.Headers,
		Timestamp:      d.Timestamp,
	}
}

// toDomainEntryList converts a list response.
func toDomainEntryList(dtos []readDTO) []logentry.Entry {
	entries := make([]logentry.Entry, len(dtos))
	for i, d := range dtos {
		entries[i] = toDomainEntry(d)
	}
	return entries
}
