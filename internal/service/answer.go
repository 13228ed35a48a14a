package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/askbox/askbox/internal/language"
	"github.com/askbox/askbox/internal/metrics"
	"github.com/askbox/askbox/internal/model"
	"github.com/askbox/askbox/internal/repository"
	"github.com/askbox/askbox/internal/validation"
)

type AnswerService struct {
	answerRepository   repository.AnswerRepository
	questionRepository repository.QuestionRepository
	now                func() time.Time
}

func NewAnswerService(answerRepository repository.AnswerRepository, questionRepository repository.QuestionRepository) *AnswerService {
	return &AnswerService{
		answerRepository:   answerRepository,
		questionRepository: questionRepository,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

// Create answers a question on behalf of requesterClerkID. Authorisation,
// the declined check, the already-answered check, the insert and the bind all
// happen in one transaction, so of two concurrent calls exactly one wins and
// the other gets ErrAlreadyAnswered.
func (s *AnswerService) Create(ctx context.Context, requesterClerkID, questionID, content string) (*model.Answer, error) {
	content = validation.NormalizeContent(content)
	err := validation.ValidateContent(content, validation.MaxAnswerLength)
	if err != nil {
		return nil, err
	}

	lang := language.Detect(content)
	answer := &model.Answer{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		Content:    content,
		Language:   &lang,
		CreatedAt:  s.now(),
	}

	err = s.answerRepository.CreateAndBind(ctx, answer, func(question *model.Question) error {
		if !question.IsRecipient(requesterClerkID) {
			return ErrNotAuthorized
		}
		if question.DeletedAt != nil {
			return ErrQuestionDeclined
		}
		return nil
	})
	if err != nil {
		result := "error"
		if errors.Is(err, ErrAlreadyAnswered) {
			result = "already_answered"
		}
		metrics.AnswerBinds.WithLabelValues(result).Inc()
		return nil, err
	}

	metrics.AnswerBinds.WithLabelValues("bound").Inc()
	slog.Info("answer created", "answer_id", answer.ID, "question_id", questionID)
	return answer, nil
}

// SoftDelete declines an answer. Only the owning question's recipient may do
// so, and repeating it is a no-op.
func (s *AnswerService) SoftDelete(ctx context.Context, answerID, requesterClerkID string) (*model.Answer, error) {
	answer, err := s.authorizeRecipient(ctx, answerID, requesterClerkID)
	if err != nil {
		return nil, err
	}

	if answer.DeletedAt != nil {
		return answer, nil
	}

	now := s.now()
	err = s.answerRepository.SetDeletedAt(ctx, answer.ID, &now)
	if err != nil {
		return nil, err
	}
	answer.DeletedAt = &now

	metrics.LifecycleTransitions.WithLabelValues("answer", "soft_delete").Inc()
	return answer, nil
}

func (s *AnswerService) Restore(ctx context.Context, answerID, requesterClerkID string) (*model.Answer, error) {
	answer, err := s.authorizeRecipient(ctx, answerID, requesterClerkID)
	if err != nil {
		return nil, err
	}

	if answer.DeletedAt == nil {
		return answer, nil
	}

	err = s.answerRepository.SetDeletedAt(ctx, answer.ID, nil)
	if err != nil {
		return nil, err
	}
	answer.DeletedAt = nil

	metrics.LifecycleTransitions.WithLabelValues("answer", "restore").Inc()
	return answer, nil
}

func (s *AnswerService) authorizeRecipient(ctx context.Context, answerID, requesterClerkID string) (*model.Answer, error) {
	answer, err := s.answerRepository.ByID(ctx, answerID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepository.ByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, err
	}

	if !question.IsRecipient(requesterClerkID) {
		return nil, ErrNotAuthorized
	}

	return answer, nil
}
