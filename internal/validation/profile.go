package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"unicode/utf8"
)

const MaxBioLength = 500

var (
	ErrBioTooLong            = fmt.Errorf("%w: bio is too long", ErrInvalid)
	ErrInvalidSignatureColor = fmt.Errorf("%w: signature color must be #rrggbb", ErrInvalid)
	ErrInvalidAvatarURL      = fmt.Errorf("%w: avatar url must be an https url", ErrInvalid)
)

var signatureColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return ErrBioTooLong
	}
	return nil
}

func ValidateSignatureColor(color string) error {
	if !signatureColorPattern.MatchString(color) {
		return ErrInvalidSignatureColor
	}
	return nil
}

// ValidateAvatarURL accepts an empty value (no avatar) or an absolute https URL.
func ValidateAvatarURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return ErrInvalidAvatarURL
	}
	return nil
}
