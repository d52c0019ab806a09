package utils

import (
	"strings"
	"unicode/utf8"
)

func ToPtr[T any](v T) *T {
	return &v
}

// TrimmedPtr returns nil for blank input, otherwise a pointer to the trimmed value
func TrimmedPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ClampPtr cuts s to at most limit runes, so a VARCHAR(limit) column always accepts it
func ClampPtr(s *string, limit int) *string {
	if s == nil || limit <= 0 {
		return s
	}
	if utf8.RuneCountInString(*s) <= limit {
		return s
	}
	runes := []rune(*s)
	clamped := string(runes[:limit])
	return &clamped
}
