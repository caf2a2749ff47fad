// Package validate provides input validation for API path and body parameters.
// Validation failures are caught before any store call and reported inline.
package validate

import (
	"regexp"
	"strings"
)

// IDMaxLen is the maximum allowed length for a record ID (stored in DB, used in paths).
const IDMaxLen = 64

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ID validates a record identifier from a path: alphanumeric, hyphen,
// underscore; 1-IDMaxLen characters. UUIDs pass; path traversal does not.
func ID(id string) bool {
	if id == "" || len(id) > IDMaxLen {
		return false
	}
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			continue
		}
		return false
	}
	return true
}

// Email validates an email address with a conservative pattern.
func Email(s string) bool {
	if s == "" || len(s) > 254 {
		return false
	}
	return emailRe.MatchString(s)
}

// Required reports whether every given string is non-blank.
func Required(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// OneOf reports whether v equals one of the allowed values.
func OneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
