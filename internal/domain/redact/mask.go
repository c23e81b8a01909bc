package redact

import "strings"

// MaskValue partially masks a sensitive scalar value. The amount preserved
// depends on the value's length:
//
//	length <= 2   -> "***"
//	length 3..6   -> first char + stars + last char
//	length > 6    -> first 2 chars + stars + last 2 chars
//
// At most two leading and two trailing characters are ever revealed,
// regardless of input length.
func MaskValue(value string) string {
	runes := []rune(value)
	n := len(runes)

	switch {
	case n <= 2:
		return "***"
	case n <= 6:
		return string(runes[0]) + strings.Repeat("*", n-2) + string(runes[n-1])
	default:
		return string(runes[:2]) + strings.Repeat("*", n-4) + string(runes[n-2:])
	}
}
