// Package utils provides common utility functions.
package utils

import "strings"

// StripHexPrefix removes a single leading lowercase "0x" from s.
func StripHexPrefix(s string) string {
	return strings.TrimPrefix(s, "0x")
}

// IsHexDigits reports whether s is non-empty and made only of [0-9a-fA-F].
func IsHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
