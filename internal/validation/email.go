package validation

import (
	"net/mail"
)

// ValidateEmail validates email format and length
// Uses Go's built-in net/mail parser which follows RFC 5322
func ValidateEmail(email string) error {
	_, err := NormalizeEmail(email)
	return err
}

// NormalizeEmail validates email and returns the bare address, so
// "Bob <bob@example.com>" becomes "bob@example.com".
func NormalizeEmail(email string) (string, error) {
	// Check length (RFC 5321: local part max 64, domain max 255, total max 254 with @)
	if len(email) > 254 {
		return "", invalid("email address is too long (max 254 characters)")
	}

	if email == "" {
		return "", invalid("email address is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", invalid("invalid email address format")
	}

	return addr.Address, nil
}

// LooseEmail accepts any non-empty email. A well-formed one comes back bare,
// anything else comes back as typed.
func LooseEmail(email string) (string, error) {
	if email == "" {
		return "", invalid("email address is required")
	}

	addr, err := NormalizeEmail(email)
	if err != nil {
		return email, nil
	}
	return addr, nil
}
