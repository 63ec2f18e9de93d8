package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeName lowercases s, turns underscores into spaces and collapses
// runs of whitespace. Every table key goes through it.
func NormalizeName(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeQuery lowercases s and turns underscores into spaces. Whitespace
// is kept as typed so exact matches stay exact.
func NormalizeQuery(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", " ")
}

// Underscore renders a name in shortname form, e.g. "black star" -> "black_star"
func Underscore(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// RuneLen returns the number of runes in s
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// HasControl checks if s contains control characters
func HasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// IsOnlySpace checks if s is empty or consists only of whitespace
func IsOnlySpace(s string) bool {
	return strings.TrimSpace(s) == ""
}
