package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MaxDisplayNameLength = 50

var (
	ErrUsernameInvalid    = fmt.Errorf("%w: username must be 3-30 characters of a-z, 0-9, '_' or '.'", ErrInvalid)
	ErrUsernameReserved   = fmt.Errorf("%w: username is reserved", ErrInvalid)
	ErrDisplayNameTooLong = fmt.Errorf("%w: display name is too long", ErrInvalid)
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)

// Path segments and words that must not become public profile URLs.
var reservedUsernames = map[string]bool{
	"admin": true, "api": true, "app": true, "feed": true, "healthz": true,
	"me": true, "metrics": true, "settings": true, "support": true, "webhooks": true,
}

// NormalizeUsername lowercases and trims a username and drops one leading @.
func NormalizeUsername(username string) string {
	username = strings.TrimSpace(username)
	username = strings.TrimPrefix(username, "@")
	return strings.ToLower(username)
}

// ValidateUsername validates an already normalised username.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrUsernameInvalid
	}
	if strings.HasPrefix(username, ".") || strings.HasSuffix(username, ".") || strings.Contains(username, "..") {
		return ErrUsernameInvalid
	}
	if reservedUsernames[username] {
		return ErrUsernameReserved
	}
	return nil
}

func ValidateDisplayName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) > MaxDisplayNameLength {
		return ErrDisplayNameTooLong
	}
	return nil
}
