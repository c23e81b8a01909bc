package redact

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// loggableContentTypes lists the content-type prefixes whose bodies may be
// captured. Anything else is treated as binary and replaced by a placeholder.
var loggableContentTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"text/plain",
	"text/html",
	"text/xml",
	"application/xml",
}

// LoggableContentType reports whether a body with the given Content-Type
// header is eligible for capture. An empty content type is not loggable.
func LoggableContentType(contentType string) bool {
	for _, t := range loggableContentTypes {
		if strings.HasPrefix(contentType, t) {
			return true
		}
	}
	return false
}

// Sanitizer turns a raw captured body into a string that is safe to ship to
// the log store. Every failure path resolves to a placeholder string; the
// method never returns an error to the caller.
type Sanitizer struct {
	redactor    *Redactor
	maxBodySize int
}

// NewSanitizer creates a Sanitizer that rejects bodies larger than
// maxBodySize bytes and masks the rest via the given pattern registry.
func NewSanitizer(patterns *FieldPatterns, maxBodySize int) *Sanitizer {
	return &Sanitizer{
		redactor:    NewRedactor(patterns),
		maxBodySize: maxBodySize,
	}
}

// MaxBodySize returns the configured body-size ceiling in bytes.
func (s *Sanitizer) MaxBodySize() int {
	return s.maxBodySize
}

// Sanitize produces the loggable form of a body:
//
//   - empty body -> ""
//   - content type outside the allow-list, or non-UTF-8 bytes ->
//     "<binary data: N bytes>"
//   - body over the size ceiling -> "<body too large: N bytes>"
//   - valid JSON -> structurally redacted JSON
//   - anything else -> regex-masked text
func (s *Sanitizer) Sanitize(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !LoggableContentType(contentType) {
		return BinaryPlaceholder(len(body))
	}
	if len(body) > s.maxBodySize {
		return OversizePlaceholder(len(body))
	}
	if !utf8.Valid(body) {
		return BinaryPlaceholder(len(body))
	}

	if redacted, ok := s.redactor.RedactJSON(body); ok {
		return string(redacted)
	}
	return MaskText(string(body))
}

// BinaryPlaceholder is the stand-in for bodies that cannot be logged as text.
func BinaryPlaceholder(n int) string {
	return fmt.Sprintf("<binary data: %d bytes>", n)
}

// OversizePlaceholder is the stand-in for bodies over the size ceiling. n is
// the true byte length of the rejected body.
func OversizePlaceholder(n int) string {
	return fmt.Sprintf("<body too large: %d bytes>", n)
}

// ReadErrorPlaceholder is the stand-in recorded when a body could not be read
// from the wire.
func ReadErrorPlaceholder(err error) string {
	return fmt.Sprintf("<error reading body: %v>", err)
}
