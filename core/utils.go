package core

import "strings"

// CleanString strips surrounding whitespace from s, lower-casing the result
// when asked. Inputs pass through it before validation and persistence.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}
