package redact

import "regexp"

// textRule pairs a pattern with its replacement template. Rules run in slice
// order, each exactly once over the whole input.
type textRule struct {
	re   *regexp.Regexp
	repl string
}

// textRules masks sensitive data in bodies that are not valid JSON: form
// posts, query strings, and free text. Key/value rules run first, from the
// most specific key names to the most generic, then the card-number rule.
// The rules are non-overlapping within a pass; a value already replaced with
// "***" is not matched again by later rules.
var textRules = []textRule{
	{regexp.MustCompile(`(?i)(password[=:]\s*)([^&\s]+)`), "${1}***"},
	{regexp.MustCompile(`(?i)(passwd[=:]\s*)([^&\s]+)`), "${1}***"},
	{regexp.MustCompile(`(?i)(pwd[=:]\s*)([^&\s]+)`), "${1}***"},
	{regexp.MustCompile(`(?i)(token[=:]\s*)([^&\s]+)`), "${1}***"},
	{regexp.MustCompile(`(?i)(secret[=:]\s*)([^&\s]+)`), "${1}***"},
	{regexp.MustCompile(`(?i)(key[=:]\s*)([^&\s]+)`), "${1}***"},
	{regexp.MustCompile(`(?i)(api[_-]?key[=:]\s*)([^&\s]+)`), "${1}***"},
	{regexp.MustCompile(`(?i)(access[_-]?token[=:]\s*)([^&\s]+)`), "${1}***"},

	// Card-number groups: 4x4 digits, optionally separated by '-' or space.
	{regexp.MustCompile(`\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}`), "****-****-****-****"},
}

// MaskText masks sensitive patterns in raw text. Unlike the structured path,
// the output length may differ from the input length.
func MaskText(text string) string {
	for _, rule := range textRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}
	return text
}
