package service

import (
	"errors"

	"github.com/askbox/askbox/internal/model"
	"github.com/askbox/askbox/internal/repository"
	"github.com/askbox/askbox/internal/validation"
)

var (
	ErrPublicQuestionLoginRequired = errors.New("public question requires a signed-in sender")
	ErrPublicQuestionOnly          = errors.New("recipient only accepts public questions")
	ErrAnonymousLoginRequired      = errors.New("anonymous question requires a signed-in sender")
	ErrNotAuthorized               = errors.New("not authorized")
	ErrQuestionDeclined            = errors.New("question is declined")
	ErrSelfReferral                = errors.New("cannot refer yourself")
	ErrUnauthenticated             = errors.New("authentication required")

	// Re-exported so callers only deal with service errors.
	ErrUserNotFound         = repository.ErrUserNotFound
	ErrQuestionNotFound     = repository.ErrQuestionNotFound
	ErrAnswerNotFound       = repository.ErrAnswerNotFound
	ErrAlreadyAnswered      = repository.ErrAlreadyAnswered
	ErrDuplicateUsername    = repository.ErrDuplicateUsername
	ErrReferrerAlreadySet   = repository.ErrReferrerAlreadySet
	ErrInvalidSecurityLevel = model.ErrInvalidSecurityLevel
)

// Error kinds are the stable strings sent to clients, which map them to
// localised messages.
const (
	KindPublicQuestionLoginRequired = "PublicQuestionLoginRequired"
	KindPublicQuestionOnly          = "PublicQuestionOnly"
	KindAnonymousLoginRequired      = "AnonymousLoginRequired"
	KindUserNotFound                = "UserNotFound"
	KindQuestionNotFound            = "QuestionNotFound"
	KindAnswerNotFound              = "AnswerNotFound"
	KindAlreadyAnswered             = "AlreadyAnswered"
	KindNotAuthorized               = "NotAuthorized"
	KindInvalidSecurityLevel        = "InvalidSecurityLevel"
	KindQuestionDeclined            = "QuestionDeclined"
	KindUsernameTaken               = "UsernameTaken"
	KindReferrerAlreadySet          = "ReferrerAlreadySet"
	KindSelfReferral                = "SelfReferral"
	KindValidationFailed            = "ValidationFailed"
	KindUnauthenticated             = "Unauthenticated"
	KindRateLimited                 = "RateLimited"
	KindInternalError               = "InternalError"
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrPublicQuestionLoginRequired, KindPublicQuestionLoginRequired},
	{ErrPublicQuestionOnly, KindPublicQuestionOnly},
	{ErrAnonymousLoginRequired, KindAnonymousLoginRequired},
	{ErrUserNotFound, KindUserNotFound},
	{ErrQuestionNotFound, KindQuestionNotFound},
	{ErrAnswerNotFound, KindAnswerNotFound},
	{ErrAlreadyAnswered, KindAlreadyAnswered},
	{ErrNotAuthorized, KindNotAuthorized},
	{ErrInvalidSecurityLevel, KindInvalidSecurityLevel},
	{ErrQuestionDeclined, KindQuestionDeclined},
	{ErrDuplicateUsername, KindUsernameTaken},
	{ErrReferrerAlreadySet, KindReferrerAlreadySet},
	{ErrSelfReferral, KindSelfReferral},
	{ErrUnauthenticated, KindUnauthenticated},
	{validation.ErrInvalid, KindValidationFailed},
}

// ErrorKind maps err to its client-facing kind. Anything not part of the
// taxonomy, such as a storage failure, is InternalError.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternalError
}
