package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/askbox/askbox/internal/model"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	ByID(ctx context.Context, id string) (*model.Question, error)
	SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error
	Inbox(ctx context.Context, recipientClerkID string, limit, offset int) ([]*model.Question, error)
	Declined(ctx context.Context, recipientClerkID string, limit, offset int) ([]*model.Question, error)
	AnsweredByRecipient(ctx context.Context, recipientClerkID string, limit, offset int) ([]*model.AnsweredQuestion, error)
	AnsweredFeed(ctx context.Context, limit, offset int) ([]*model.AnsweredQuestion, error)
}

type questionRepository struct {
	db *sqlx.DB
}

func NewQuestionRepository(db *sqlx.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	query := `INSERT INTO questions (id, recipient_clerk_id, sender_clerk_id, content, is_anonymous,
	          anonymous_avatar_seed, answer_id, language, deleted_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		question.ID,
		question.RecipientClerkID,
		question.SenderClerkID,
		question.Content,
		question.IsAnonymous,
		question.AnonymousAvatarSeed,
		question.AnswerID,
		question.Language,
		question.DeletedAt,
		question.CreatedAt,
	)

	return err
}

func (r *questionRepository) ByID(ctx context.Context, id string) (*model.Question, error) {
	return questionByID(ctx, r.db, id)
}

func questionByID(ctx context.Context, q sqlx.QueryerContext, id string) (*model.Question, error) {
	question := &model.Question{}
	query := `SELECT * FROM questions WHERE id = $1`

	err := sqlx.GetContext(ctx, q, question, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	return question, nil
}

// SetDeletedAt sets or clears the soft-delete marker. It never inserts, so a
// question removed in the meantime stays gone and ErrQuestionNotFound is
// returned. Concurrent calls are last-write-wins.
func (r *questionRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error {
	query := `UPDATE questions SET deleted_at = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, deletedAt, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

func (r *questionRepository) Inbox(ctx context.Context, recipientClerkID string, limit, offset int) ([]*model.Question, error) {
	query := `SELECT * FROM questions
	          WHERE recipient_clerk_id = $1 AND answer_id IS NULL AND deleted_at IS NULL
	          ORDER BY created_at DESC, id DESC
	          LIMIT $2 OFFSET $3`

	return r.selectQuestions(ctx, query, recipientClerkID, limit, offset)
}

func (r *questionRepository) Declined(ctx context.Context, recipientClerkID string, limit, offset int) ([]*model.Question, error) {
	query := `SELECT * FROM questions
	          WHERE recipient_clerk_id = $1 AND deleted_at IS NOT NULL
	          ORDER BY deleted_at DESC, id DESC
	          LIMIT $2 OFFSET $3`

	return r.selectQuestions(ctx, query, recipientClerkID, limit, offset)
}

func (r *questionRepository) selectQuestions(ctx context.Context, query string, args ...any) ([]*model.Question, error) {
	questions := []*model.Question{}

	err := r.db.SelectContext(ctx, &questions, query, args...)
	if err != nil {
		return nil, err
	}

	return questions, nil
}

// answeredSelect joins questions with their visible answers. Answer columns
// are aliased into the nested "answer" struct of model.AnsweredQuestion.
const answeredSelect = `SELECT q.*,
	a.id AS "answer.id",
	a.question_id AS "answer.question_id",
	a.content AS "answer.content",
	a.language AS "answer.language",
	a.deleted_at AS "answer.deleted_at",
	a.created_at AS "answer.created_at"
	FROM questions q
	JOIN answers a ON a.id = q.answer_id
	WHERE q.deleted_at IS NULL AND a.deleted_at IS NULL`

func (r *questionRepository) AnsweredByRecipient(ctx context.Context, recipientClerkID string, limit, offset int) ([]*model.AnsweredQuestion, error) {
	query := answeredSelect + ` AND q.recipient_clerk_id = $1
	          ORDER BY a.created_at DESC, a.id DESC
	          LIMIT $2 OFFSET $3`

	return r.selectAnswered(ctx, query, recipientClerkID, limit, offset)
}

func (r *questionRepository) AnsweredFeed(ctx context.Context, limit, offset int) ([]*model.AnsweredQuestion, error) {
	query := answeredSelect + `
	          ORDER BY a.created_at DESC, a.id DESC
	          LIMIT $1 OFFSET $2`

	return r.selectAnswered(ctx, query, limit, offset)
}

func (r *questionRepository) selectAnswered(ctx context.Context, query string, args ...any) ([]*model.AnsweredQuestion, error) {
	items := []*model.AnsweredQuestion{}

	err := r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, err
	}

	return items, nil
}
