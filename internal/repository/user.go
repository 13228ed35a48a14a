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
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrReferrerAlreadySet = errors.New("referrer already set")
)

type UserRepository interface {
	// GetOrCreate inserts user unless a row with the same clerk id exists and
	// returns the stored row either way.
	GetOrCreate(ctx context.Context, user *model.User) (*model.User, error)
	ByClerkID(ctx context.Context, clerkID string) (*model.User, error)
	ByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetReferrer(ctx context.Context, clerkID, referrerClerkID string) error
	Delete(ctx context.Context, clerkID string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetOrCreate(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.QuestionSecurityLevel == "" {
		user.QuestionSecurityLevel = model.SecurityAnyone
	}

	query := `INSERT INTO users (clerk_id, username, display_name, avatar_url, bio, social_links,
	          question_security_level, locale, signature_color, referred_by, email, notify_new_questions,
	          created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          ON CONFLICT (clerk_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		user.ClerkID,
		user.Username,
		user.DisplayName,
		user.AvatarURL,
		user.Bio,
		user.SocialLinks,
		user.QuestionSecurityLevel,
		user.Locale,
		user.SignatureColor,
		user.ReferredBy,
		user.Email,
		user.NotifyNewQuestions,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return r.ByClerkID(ctx, user.ClerkID)
}

func (r *userRepository) ByClerkID(ctx context.Context, clerkID string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE clerk_id = $1`

	err := r.db.GetContext(ctx, user, query, clerkID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) ByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Update writes every mutable profile column and advances updated_at.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = nextUpdatedAt(user.UpdatedAt)

	query := `UPDATE users
	          SET username = $1, display_name = $2, avatar_url = $3, bio = $4, social_links = $5,
	              question_security_level = $6, locale = $7, signature_color = $8, email = $9,
	              notify_new_questions = $10, updated_at = $11
	          WHERE clerk_id = $12`

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.DisplayName,
		user.AvatarURL,
		user.Bio,
		user.SocialLinks,
		user.QuestionSecurityLevel,
		user.Locale,
		user.SignatureColor,
		user.Email,
		user.NotifyNewQuestions,
		user.UpdatedAt,
		user.ClerkID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetReferrer records who referred the user. It only succeeds while no
// referrer is set.
func (r *userRepository) SetReferrer(ctx context.Context, clerkID, referrerClerkID string) error {
	query := `UPDATE users SET referred_by = $1, updated_at = $2 WHERE clerk_id = $3 AND referred_by IS NULL`

	result, err := r.db.ExecContext(ctx, query, referrerClerkID, time.Now().UTC(), clerkID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		_, err := r.ByClerkID(ctx, clerkID)
		if err != nil {
			return err
		}
		return ErrReferrerAlreadySet
	}

	return nil
}

// Delete removes the user. Received questions and their answers go with it;
// questions the user sent stay, with sender_clerk_id cleared.
func (r *userRepository) Delete(ctx context.Context, clerkID string) error {
	query := `DELETE FROM users WHERE clerk_id = $1`

	result, err := r.db.ExecContext(ctx, query, clerkID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// nextUpdatedAt returns the current time, or a tick after prev when the clock
// has not moved past it, so updated_at never goes backwards.
func nextUpdatedAt(prev time.Time) time.Time {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}
