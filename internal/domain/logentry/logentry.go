// Package logentry defines the captured request/response record shipped to
// the external log store, plus the filter used on the query path.
package logentry

import "time"

// Entry is one captured request/response pair. It is constructed by the
// capture middleware during a single request's lifetime and handed off to the
// dispatcher exactly once; after hand-off it is never mutated.
//
// Invariant: no field ever carries an unmasked sensitive value. Redaction
// happens at capture time, before the entry exists.
type Entry struct {
	// ID is assigned by the log store; zero until the entry is stored.
	ID int64

	ServiceName string
	Method      string
	Path        string

	// QueryParams holds the raw (already redaction-safe) query parameters.
	// Values with repeated keys are joined by the capture layer.
	QueryParams map[string]string

	// Headers holds request headers with sensitive values replaced by
	// "<redacted>". Keys keep their canonical wire casing.
	Headers map[string]string

	// RequestBody and ResponseBody are redacted text or a placeholder
	// ("<binary data: N bytes>", "<body too large: N bytes>",
	// "<error reading body: ...>"). Empty when body capture is disabled.
	RequestBody  string
	ResponseBody string

	StatusCode int
	ClientIP   string
	UserAgent  string

	// ProcessingTime is the wall-clock duration from request entry to
	// response completion.
	ProcessingTime time.Duration

	// Timestamp is the capture start time.
	Timestamp time.Time
}

// Filter narrows log store queries. Zero-valued fields are not applied.
type Filter struct {
	ServiceName string
	Method      string
	StatusCode  int
	ClientIP    string
	Path        string
	StartDate   time.Time
	EndDate     time.Time

	// Skip and Limit paginate the result set. The store caps Limit at
	// MaxPageSize.
	Skip  int
	Limit int
}

// MaxPageSize is the largest page the query API will request from the store.
const MaxPageSize = 1000

// Normalize clamps pagination values to sane bounds: negative skip becomes 0,
// non-positive limit becomes DefaultPageSize, and limit is capped at
// MaxPageSize.
func (f Filter) Normalize() Filter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

// DefaultPageSize is used when a list request does not specify a limit.
const DefaultPageSize = 100

// ServiceStats maps service names to their stored entry counts.
type ServiceStats map[string]int64
