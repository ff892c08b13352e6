// Package validator provides input checks for user payloads and URLs.
package validator

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits.
const (
	// MinPasswordLength is the minimum password length in characters.
	MinPasswordLength = 6

	// MinNameLength is the minimum trimmed name length in characters.
	MinNameLength = 2

	// DefaultShortCodeLength is the length of generated short codes.
	DefaultShortCodeLength = 6

	shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Validation messages returned by ValidateUserPayload.
const (
	MsgInvalidEmail    = "Invalid email format"
	MsgInvalidPassword = "Password must be at least 6 characters long"
	MsgInvalidName     = "Name must be at least 2 characters long"
	missingFieldPrefix = "Missing required field: "
)

// User payload field names.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// urlPattern accepts http(s) URLs whose host is a dotted domain, localhost or an IPv4 literal.
var urlPattern = regexp.MustCompile(
	`(?i)^https?://` +
		`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
		`localhost|` +
		`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
		`(?::\d+)?` +
		`(?:/?|[/?]\S+)$`,
)

// Fields holds the user payload fields a client actually sent.
// A missing key means the field was absent from the request.
type Fields map[string]string

// ValidateEmail reports whether s looks like local@domain.tld.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePassword reports whether s is long enough to be a password.
func ValidatePassword(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// ValidateName reports whether the trimmed name is long enough.
func ValidateName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinNameLength
}

// ValidateUserPayload checks required fields first, then email, password and name.
// It returns the first failure message, or true and an empty message.
func ValidateUserPayload(fields Fields, required ...string) (bool, string) {
	for _, field := range required {
		if fields[field] == "" {
			return false, missingFieldPrefix + field
		}
	}

	if email, ok := fields[FieldEmail]; ok && !ValidateEmail(email) {
		return false, MsgInvalidEmail
	}

	if password, ok := fields[FieldPassword]; ok && !ValidatePassword(password) {
		return false, MsgInvalidPassword
	}

	if name, ok := fields[FieldName]; ok && !ValidateName(name) {
		return false, MsgInvalidName
	}

	return true, ""
}

// IsValidURL reports whether s is an absolute http(s) URL with a usable host.
func IsValidURL(s string) bool {
	if s == "" {
		return false
	}
	return urlPattern.MatchString(s)
}

// SanitizeURL prepends https:// when s has no http(s) scheme.
func SanitizeURL(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "https://" + s
}

// GenerateShortCode returns a random alphanumeric code of the given length.
// Non-positive lengths fall back to DefaultShortCodeLength.
func GenerateShortCode(length int) string {
	if length <= 0 {
		length = DefaultShortCodeLength
	}

	b := make([]byte, length)
	for i := range b {
		b[i] = shortCodeAlphabet[randIndex(len(shortCodeAlphabet))]
	}
	return string(b)
}

// IsShortCode reports whether s could have been produced by GenerateShortCode.
func IsShortCode(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(shortCodeAlphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

// randIndex returns a cryptographically secure random integer in [0, n).
func randIndex(n int) int {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is unavailable.
		panic("validator: crypto/rand unavailable: " + err.Error())
	}
	return int(idx.Int64())
}
