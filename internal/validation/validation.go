// Package validation holds the field validators and input masks used by the
// condominium app forms. Every function is pure and safe for concurrent use.
package validation

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)
var nonAlphanumeric = regexp.MustCompile(`[^0-9A-Za-z]`)

var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@" +
		`[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
		`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// RemoveNonNumeric keeps only the ASCII digits of value.
func RemoveNonNumeric(value string) string {
	if value == "" {
		return ""
	}
	return nonDigits.ReplaceAllString(value, "")
}

func NormalizeCNPJ(raw string) string {
	cleaned := nonAlphanumeric.ReplaceAllString(strings.TrimSpace(raw), "")
	return strings.ToUpper(cleaned)
}

func NormalizePlate(raw string) string {
	return strings.ToUpper(nonAlphanumeric.ReplaceAllString(raw, ""))
}

func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailPattern.MatchString(email)
}

// repeatedDigits reports whether every character of s is the same.
func repeatedDigits(s string) bool {
	return s != "" && strings.Count(s, s[:1]) == len(s)
}
