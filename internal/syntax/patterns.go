package syntax

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{7,15}$`)
	numericToken = regexp.MustCompile(`^[0-9]+([.,][0-9]+)*$`)
)

// IsEmail reports whether s (trimmed) is an ASCII email address with a TLD
// of at least two letters.
func IsEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsPhone reports whether s (trimmed) is an optional "+" followed by 7 to 15
// characters drawn from digits, spaces, hyphens and parentheses.
func IsPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// IsNumericToken reports whether s is a bare number: digits with optional
// "." or "," groups and no currency marker.
func IsNumericToken(s string) bool {
	return numericToken.MatchString(strings.TrimSpace(s))
}
