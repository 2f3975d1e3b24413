package validator

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmailLike does a cheap shape check, not full RFC validation.
func IsEmailLike(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// ValidatePasswordStrength returns a user-facing message describing the
// first failed rule, or "" when the password passes all of them.
func ValidatePasswordStrength(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long."
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		return "Password must contain at least one uppercase letter."
	}
	if !hasLower {
		return "Password must contain at least one lowercase letter."
	}
	if !hasDigit {
		return "Password must contain at least one digit."
	}
	if !hasSpecial {
		return "Password must contain at least one special character."
	}
	return ""
}
