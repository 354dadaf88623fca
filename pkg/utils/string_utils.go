package utils

import "strings"

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// EqualFold reports whether two strings match ignoring case, after trimming
// surrounding whitespace. Used for supplier/category filter comparisons.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
