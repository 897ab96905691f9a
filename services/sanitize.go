package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all HTML from client-supplied free text before it
// is persisted (names, notes, blocked-slot reasons).
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup and surrounding whitespace from user input.
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// SanitizeTextPtr sanitizes optional input, mapping empty results to nil.
func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeText(*s)
	if clean == "" {
		return nil
	}
	return &clean
}
