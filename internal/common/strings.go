package common

import (
	"unicode"
	"unicode/utf8"
)

// UnknownStr is the String() fallback for enum values outside their range.
const UnknownStr = "unknown"

// UpperFirstChar returns s with its first rune upper-cased.
// Blank strings are returned unchanged.
func UpperFirstChar(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsSpace(r) {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
