package serverutils

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// SanitizeString trims and collapses internal whitespace.
func SanitizeString(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// SanitizeEmail case-normalizes an email address. Uniqueness checks and
// storage always operate on the normalized form.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
