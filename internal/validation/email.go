package validation

import (
	"fmt"
	"net/mail"
)

var ErrInvalidEmail = fmt.Errorf("%w: invalid email address", ErrInvalid)

// ValidateEmail checks a notification address copied from the identity
// provider. RFC 5321 caps the whole address at 254 characters.
func ValidateEmail(email string) error {
	if email == "" || len(email) > 254 {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}
