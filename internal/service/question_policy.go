package service

import "github.com/askbox/askbox/internal/model"

// ValidateQuestionSecurity decides whether a question may be submitted to a
// recipient. level must be the recipient's stored security level and
// senderClerkID is empty for a signed-out visitor. Rules apply in order and
// the first match wins:
//
//  1. a public question needs a signed-in sender, whatever the level
//  2. public_only refuses anonymous questions
//  3. verified_anonymous refuses anonymous questions from signed-out visitors
func ValidateQuestionSecurity(level model.SecurityLevel, isAnonymous bool, senderClerkID string) error {
	authenticated := senderClerkID != ""

	if !isAnonymous && !authenticated {
		return ErrPublicQuestionLoginRequired
	}

	if level == model.SecurityPublicOnly && isAnonymous {
		return ErrPublicQuestionOnly
	}

	if level == model.SecurityVerifiedAnonymous && isAnonymous && !authenticated {
		return ErrAnonymousLoginRequired
	}

	return nil
}
