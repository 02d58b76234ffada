package validator

import (
	"errors"
	"regexp"

	"github.com/badoux/checkmail"
)

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidUsername = errors.New("invalid username")
	ErrEmptyPayload    = errors.New("empty encrypted payload")
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

func ValidateEmail(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePayload rejects empty opaque fields where a value is required.
// Length is the only thing the server can check on ciphertext.
func ValidatePayload(payload []byte) error {
	if len(payload) == 0 {
		return ErrEmptyPayload
	}
	return nil
}
