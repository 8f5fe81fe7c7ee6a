// Package sanitizer normalizes free-text input before validation and storage.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims surrounding whitespace and collapses internal runs of
// whitespace into single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}
	return result.String()
}

// SanitizeNotes normalizes booking notes and strips control characters that
// have no business in a free-text field.
func SanitizeNotes(s string) string {
	var cleaned strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' {
			continue
		}
		cleaned.WriteRune(r)
	}
	return TrimAndNormalize(cleaned.String())
}

// SanitizeDisplayName normalizes a display name to a single-line string.
func SanitizeDisplayName(s string) string {
	return TrimAndNormalize(strings.ReplaceAll(s, "\n", " "))
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
