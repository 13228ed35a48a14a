package model

import "time"

type AnswerState string

const (
	AnswerActive   AnswerState = "active"
	AnswerDeclined AnswerState = "declined"
)

type Answer struct {
	ID         string     `db:"id" json:"id"`
	QuestionID string     `db:"question_id" json:"questionId"`
	Content    string     `db:"content" json:"content"`
	Language   *string    `db:"language" json:"language,omitempty"`
	DeletedAt  *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

func (a *Answer) State() AnswerState {
	if a.DeletedAt != nil {
		return AnswerDeclined
	}
	return AnswerActive
}

// AnsweredQuestion is a question joined with its bound answer, as shown on
// profile and global feeds.
type AnsweredQuestion struct {
	Question
	Answer Answer `db:"answer" json:"answer"`
}

func (aq AnsweredQuestion) ViewFor(viewerClerkID string) AnsweredQuestion {
	aq.Question = aq.Question.ViewFor(viewerClerkID)
	return aq
}
