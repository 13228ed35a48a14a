package model

import (
	"errors"
	"time"

	"github.com/askbox/askbox/internal/social"
)

// SecurityLevel is the recipient's policy for who may ask which kind of
// question. The string values are part of the stored data.
type SecurityLevel string

const (
	SecurityAnyone            SecurityLevel = "anyone"
	SecurityVerifiedAnonymous SecurityLevel = "verified_anonymous"
	SecurityPublicOnly        SecurityLevel = "public_only"
)

var ErrInvalidSecurityLevel = errors.New("invalid security level")

func ParseSecurityLevel(raw string) (SecurityLevel, error) {
	level := SecurityLevel(raw)
	if !level.Valid() {
		return "", ErrInvalidSecurityLevel
	}
	return level, nil
}

func (l SecurityLevel) Valid() bool {
	switch l {
	case SecurityAnyone, SecurityVerifiedAnonymous, SecurityPublicOnly:
		return true
	}
	return false
}

type User struct {
	ClerkID               string        `db:"clerk_id" json:"clerkId"`
	Username              *string       `db:"username" json:"username"`
	DisplayName           string        `db:"display_name" json:"displayName"`
	AvatarURL             string        `db:"avatar_url" json:"avatarUrl"`
	Bio                   string        `db:"bio" json:"bio"`
	SocialLinks           social.Links  `db:"social_links" json:"socialLinks"`
	QuestionSecurityLevel SecurityLevel `db:"question_security_level" json:"questionSecurityLevel"`
	Locale                *string       `db:"locale" json:"locale"`
	SignatureColor        *string       `db:"signature_color" json:"signatureColor"`
	ReferredBy            *string       `db:"referred_by" json:"referredBy,omitempty"`
	CreatedAt             time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time     `db:"updated_at" json:"updatedAt"`

	// Private to the account holder
	Email              *string `db:"email" json:"-"`
	NotifyNewQuestions bool    `db:"notify_new_questions" json:"-"`
}

func (u *User) HasUsername() bool {
	return u.Username != nil && *u.Username != ""
}

// Name is the best display name available for the user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.HasUsername() {
		return *u.Username
	}
	return ""
}
