// Package redact implements the sensitive-value masking rules applied to
// captured request and response data before it leaves the process.
//
// The package is pure domain logic with no I/O. Its entry points are:
//
//	patterns := redact.NewFieldPatterns()
//	sanitizer := redact.NewSanitizer(patterns, maxBodySize)
//	safe := sanitizer.Sanitize(contentType, body)
//
// Structured (JSON) bodies are walked recursively and values under sensitive
// keys are masked in place; unparseable text bodies fall back to regex-based
// masking. Bodies that cannot be logged safely are replaced with placeholder
// strings, never errors.
package redact

import "strings"

// FieldPatterns is the registry of field-name fragments that mark a field as
// sensitive. It is built once at startup and is immutable afterwards, so it
// is safe for concurrent reads from any number of in-flight requests.
type FieldPatterns struct {
	fragments []string
}

// NewFieldPatterns returns the canonical pattern registry. Matching is a
// case-insensitive substring test, so "confirm_password" and "X-Api-Key"
// both match.
func NewFieldPatterns() *FieldPatterns {
	return &FieldPatterns{fragments: []string{
		// Passwords.
		"password", "passwd", "pwd", "pass", "passphrase",
		"confirm_password", "new_password", "old_password", "current_password",
		"password_confirmation", "password_confirm", "repeat_password",

		// Authentication tokens.
		"token", "access_token", "refresh_token", "auth_token", "bearer_token",
		"jwt", "jwt_token", "session_token", "csrf_token", "xsrf_token",

		// API keys and secrets.
		"secret", "api_key", "apikey", "api_secret", "client_secret",
		"private_key", "public_key", "encryption_key", "signing_key",

		// Authentication and session state.
		"auth", "authorization", "credential", "credentials",
		"session", "session_id", "cookie", "cookies",

		// Personal and financial information.
		"pin", "ssn", "social_security", "social_security_number",
		"credit_card", "card_number", "card_num", "cvv", "cvc", "cvv2",
		"bank_account", "account_number", "routing_number",

		// One-time codes and recovery data.
		"otp", "verification_code", "reset_code", "activation_code",
		"security_question", "security_answer", "backup_codes",
	}}
}

// Contains reports whether the given field or header name matches any
// sensitive pattern. The match is case-insensitive and substring-based;
// there are no false negatives for the registered fragments.
func (p *FieldPatterns) Contains(name string) bool {
	lower := strings.ToLower(name)
	for _, frag := range p.fragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
