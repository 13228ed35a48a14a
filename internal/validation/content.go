package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalid is wrapped by every validation error in this package.
var ErrInvalid = errors.New("invalid input")

const (
	MaxQuestionLength = 1000
	MaxAnswerLength   = 3000
)

var (
	ErrContentRequired = fmt.Errorf("%w: content is required", ErrInvalid)
	ErrContentTooLong  = fmt.Errorf("%w: content is too long", ErrInvalid)
)

// NormalizeContent trims user text and puts it in NFC so that visually equal
// Hangul and kana input is stored the same way.
func NormalizeContent(content string) string {
	return norm.NFC.String(strings.TrimSpace(content))
}

// ValidateContent checks normalised question or answer text against maxRunes.
func ValidateContent(content string, maxRunes int) error {
	if content == "" {
		return ErrContentRequired
	}
	if utf8.RuneCountInString(content) > maxRunes {
		return ErrContentTooLong
	}
	return nil
}
