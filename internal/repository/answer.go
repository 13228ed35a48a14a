package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/askbox/askbox/internal/model"
)

var (
	ErrAnswerNotFound  = errors.New("answer not found")
	ErrAlreadyAnswered = errors.New("question already answered")
)

// BindGuard inspects the question inside the bind transaction and returns an
// error to abort the bind.
type BindGuard func(question *model.Question) error

type AnswerRepository interface {
	// CreateAndBind inserts answer and binds it to its question in one
	// transaction.
	CreateAndBind(ctx context.Context, answer *model.Answer, guard BindGuard) error
	ByID(ctx context.Context, id string) (*model.Answer, error)
	SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error
}

type answerRepository struct {
	db *sqlx.DB
}

func NewAnswerRepository(db *sqlx.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// CreateAndBind reads the question, runs guard, refuses an already bound
// question, inserts the answer and only then sets questions.answer_id. The
// bind is conditional on answer_id still being NULL, and answers.question_id
// is unique, so a racing second bind fails with ErrAlreadyAnswered instead of
// replacing the first.
func (r *answerRepository) CreateAndBind(ctx context.Context, answer *model.Answer, guard BindGuard) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin answer transaction: %w", err)
	}
	defer safeRollback(tx)

	question, err := questionByID(ctx, tx, answer.QuestionID)
	if err != nil {
		return err
	}

	if guard != nil {
		err = guard(question)
		if err != nil {
			return err
		}
	}

	if question.AnswerID != nil {
		return ErrAlreadyAnswered
	}

	insert := `INSERT INTO answers (id, question_id, content, language, deleted_at, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = tx.ExecContext(ctx, insert,
		answer.ID,
		answer.QuestionID,
		answer.Content,
		answer.Language,
		answer.DeletedAt,
		answer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyAnswered
		}
		return err
	}

	bind := `UPDATE questions SET answer_id = $1 WHERE id = $2 AND answer_id IS NULL`

	result, err := tx.ExecContext(ctx, bind, answer.ID, answer.QuestionID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAlreadyAnswered
	}

	err = tx.Commit()
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyAnswered
		}
		return fmt.Errorf("failed to commit answer: %w", err)
	}

	return nil
}

func (r *answerRepository) ByID(ctx context.Context, id string) (*model.Answer, error) {
	answer := &model.Answer{}
	query := `SELECT * FROM answers WHERE id = $1`

	err := r.db.GetContext(ctx, answer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnswerNotFound
	}
	if err != nil {
		return nil, err
	}

	return answer, nil
}

// SetDeletedAt sets or clears the answer's soft-delete marker. Like the
// question variant it never resurrects a removed row.
func (r *answerRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time) error {
	query := `UPDATE answers SET deleted_at = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, deletedAt, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAnswerNotFound
	}

	return nil
}
