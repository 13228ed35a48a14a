package model

import "time"

type QuestionState string

const (
	QuestionUnanswered QuestionState = "unanswered"
	QuestionAnswered   QuestionState = "answered"
	QuestionDeclined   QuestionState = "declined"
)

type Question struct {
	ID                  string     `db:"id" json:"id"`
	RecipientClerkID    string     `db:"recipient_clerk_id" json:"recipientClerkId"`
	SenderClerkID       *string    `db:"sender_clerk_id" json:"senderClerkId,omitempty"`
	Content             string     `db:"content" json:"content"`
	IsAnonymous         bool       `db:"is_anonymous" json:"isAnonymous"`
	AnonymousAvatarSeed *string    `db:"anonymous_avatar_seed" json:"anonymousAvatarSeed,omitempty"`
	AnswerID            *string    `db:"answer_id" json:"answerId,omitempty"`
	Language            *string    `db:"language" json:"language,omitempty"`
	DeletedAt           *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"createdAt"`
}

// State derives the lifecycle state. A declined question stays declined even
// when an answer is bound to it.
func (q *Question) State() QuestionState {
	switch {
	case q.DeletedAt != nil:
		return QuestionDeclined
	case q.AnswerID != nil:
		return QuestionAnswered
	default:
		return QuestionUnanswered
	}
}

func (q *Question) IsRecipient(clerkID string) bool {
	return clerkID != "" && q.RecipientClerkID == clerkID
}

func (q *Question) IsSender(clerkID string) bool {
	return clerkID != "" && q.SenderClerkID != nil && *q.SenderClerkID == clerkID
}

// ViewFor returns the copy of q that viewerClerkID is allowed to see. The
// sender of an anonymous question is only visible to the sender; the
// recipient does not get it either.
func (q Question) ViewFor(viewerClerkID string) Question {
	if !q.IsAnonymous || q.SenderClerkID == nil {
		return q
	}
	if viewerClerkID != "" && *q.SenderClerkID == viewerClerkID {
		return q
	}
	q.SenderClerkID = nil
	return q
}
