package validation

import (
	"unicode/utf8"
)

// ValidatePassword only checks presence. Sign-in is simulated and the
// password is never stored or compared.
func ValidatePassword(password string) error {
	if password == "" {
		return invalid("password is required")
	}

	if utf8.RuneCountInString(password) > 256 {
		return invalid("password is too long (max 256 characters)")
	}

	return nil
}
