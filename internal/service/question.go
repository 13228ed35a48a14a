package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askbox/askbox/internal/language"
	"github.com/askbox/askbox/internal/metrics"
	"github.com/askbox/askbox/internal/model"
	"github.com/askbox/askbox/internal/repository"
	"github.com/askbox/askbox/internal/validation"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page is a limit/offset window over a list.
type Page struct {
	Limit  int
	Offset int
}

// Clamp returns p with the limit defaulted and capped and a non-negative
// offset.
func (p Page) Clamp() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// notifyTimeout bounds one new-question notification.
const notifyTimeout = 10 * time.Second

// QuestionNotifier delivers the "you have a new question" message.
// *EmailService implements it.
type QuestionNotifier interface {
	SendNewQuestionEmail(ctx context.Context, email, name, locale string) error
}

type QuestionService struct {
	questionRepository repository.QuestionRepository
	userRepository     repository.UserRepository
	notifier           QuestionNotifier
	notifications      sync.WaitGroup
	now                func() time.Time
}

// NewQuestionService builds the service. notifier may be nil to disable
// notifications.
func NewQuestionService(
	questionRepository repository.QuestionRepository,
	userRepository repository.UserRepository,
	notifier QuestionNotifier,
) *QuestionService {
	return &QuestionService{
		questionRepository: questionRepository,
		userRepository:     userRepository,
		notifier:           notifier,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

type CreateQuestionInput struct {
	RecipientClerkID string
	// SenderClerkID is empty for a signed-out visitor.
	SenderClerkID       string
	Content             string
	IsAnonymous         bool
	AnonymousAvatarSeed string
}

// Create runs the visibility policy against the recipient's stored security
// level and inserts the question as unanswered. Nothing is written when the
// policy or validation rejects the submission.
func (s *QuestionService) Create(ctx context.Context, input CreateQuestionInput) (*model.Question, error) {
	recipient, err := s.userRepository.ByClerkID(ctx, input.RecipientClerkID)
	if err != nil {
		return nil, err
	}

	err = ValidateQuestionSecurity(recipient.QuestionSecurityLevel, input.IsAnonymous, input.SenderClerkID)
	if err != nil {
		metrics.QuestionsRejected.WithLabelValues(ErrorKind(err)).Inc()
		return nil, err
	}

	content := validation.NormalizeContent(input.Content)
	err = validation.ValidateContent(content, validation.MaxQuestionLength)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		ID:               uuid.NewString(),
		RecipientClerkID: recipient.ClerkID,
		Content:          content,
		IsAnonymous:      input.IsAnonymous,
		CreatedAt:        s.now(),
	}

	lang := language.Detect(content)
	question.Language = &lang

	if input.SenderClerkID != "" {
		// The sender row must exist for the foreign key.
		_, err = s.userRepository.GetOrCreate(ctx, &model.User{
			ClerkID:               input.SenderClerkID,
			QuestionSecurityLevel: model.SecurityAnyone,
			NotifyNewQuestions:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to ensure sender: %w", err)
		}
		sender := input.SenderClerkID
		question.SenderClerkID = &sender
	}

	if input.IsAnonymous {
		seed := input.AnonymousAvatarSeed
		if seed == "" {
			seed = uuid.NewString()
		}
		question.AnonymousAvatarSeed = &seed
	}

	err = s.questionRepository.Create(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	mode := "public"
	if question.IsAnonymous {
		mode = "anonymous"
	}
	metrics.QuestionsCreated.WithLabelValues(mode, lang).Inc()
	slog.Info("question created", "question_id", question.ID, "recipient", recipient.ClerkID, "anonymous", question.IsAnonymous)

	s.notifyRecipient(ctx, recipient)

	return question, nil
}

// notifyRecipient sends the notification in the background so the asker
// never waits on the mail provider. The send outlives the request context
// but not notifyTimeout.
func (s *QuestionService) notifyRecipient(ctx context.Context, recipient *model.User) {
	if s.notifier == nil || recipient.Email == nil || !recipient.NotifyNewQuestions {
		return
	}

	locale := language.DefaultLocale
	if recipient.Locale != nil {
		locale = *recipient.Locale
	}
	email, name, clerkID := *recipient.Email, recipient.Name(), recipient.ClerkID

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		err := s.notifier.SendNewQuestionEmail(sendCtx, email, name, locale)
		if err != nil {
			slog.Warn("failed to send new question email", "clerk_id", clerkID, "error", err)
		}
	}()
}

// Wait blocks until every notification started so far has finished.
func (s *QuestionService) Wait() {
	s.notifications.Wait()
}

// ByID returns the question as viewerClerkID is allowed to see it. Answered
// questions are public. Unanswered ones are visible to the recipient and the
// sender, declined ones to the recipient only. Anything else reads as not
// found.
func (s *QuestionService) ByID(ctx context.Context, questionID, viewerClerkID string) (*model.Question, error) {
	question, err := s.questionRepository.ByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	visible := question.IsRecipient(viewerClerkID)
	if question.State() == model.QuestionUnanswered {
		visible = visible || question.IsSender(viewerClerkID)
	}
	if question.State() == model.QuestionAnswered {
		visible = true
	}
	if !visible {
		return nil, ErrQuestionNotFound
	}

	return viewOf(question, viewerClerkID), nil
}

// SoftDelete declines a question. Declining an already declined question
// succeeds without changing its timestamp.
func (s *QuestionService) SoftDelete(ctx context.Context, questionID, requesterClerkID string) (*model.Question, error) {
	question, err := s.authorizeRecipient(ctx, questionID, requesterClerkID)
	if err != nil {
		return nil, err
	}

	if question.DeletedAt != nil {
		return viewOf(question, requesterClerkID), nil
	}

	now := s.now()
	err = s.questionRepository.SetDeletedAt(ctx, question.ID, &now)
	if err != nil {
		return nil, err
	}
	question.DeletedAt = &now

	metrics.LifecycleTransitions.WithLabelValues("question", "soft_delete").Inc()
	return viewOf(question, requesterClerkID), nil
}

// Restore clears a question's declined state. Restoring a visible question
// is a no-op, and a question deleted in the meantime is reported as not found
// rather than recreated.
func (s *QuestionService) Restore(ctx context.Context, questionID, requesterClerkID string) (*model.Question, error) {
	question, err := s.authorizeRecipient(ctx, questionID, requesterClerkID)
	if err != nil {
		return nil, err
	}

	if question.DeletedAt == nil {
		return viewOf(question, requesterClerkID), nil
	}

	err = s.questionRepository.SetDeletedAt(ctx, question.ID, nil)
	if err != nil {
		return nil, err
	}
	question.DeletedAt = nil

	metrics.LifecycleTransitions.WithLabelValues("question", "restore").Inc()
	return viewOf(question, requesterClerkID), nil
}

func (s *QuestionService) authorizeRecipient(ctx context.Context, questionID, requesterClerkID string) (*model.Question, error) {
	question, err := s.questionRepository.ByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if !question.IsRecipient(requesterClerkID) {
		return nil, ErrNotAuthorized
	}

	return question, nil
}

// Inbox lists the recipient's unanswered, visible questions, newest first.
func (s *QuestionService) Inbox(ctx context.Context, recipientClerkID string, page Page) ([]*model.Question, error) {
	page = page.Clamp()
	questions, err := s.questionRepository.Inbox(ctx, recipientClerkID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return viewsOf(questions, recipientClerkID), nil
}

func (s *QuestionService) Declined(ctx context.Context, recipientClerkID string, page Page) ([]*model.Question, error) {
	page = page.Clamp()
	questions, err := s.questionRepository.Declined(ctx, recipientClerkID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return viewsOf(questions, recipientClerkID), nil
}

// ProfileFeed lists a recipient's answered questions as viewerClerkID sees
// them.
func (s *QuestionService) ProfileFeed(ctx context.Context, recipientClerkID, viewerClerkID string, page Page) ([]*model.AnsweredQuestion, error) {
	page = page.Clamp()
	items, err := s.questionRepository.AnsweredByRecipient(ctx, recipientClerkID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return answeredViewsOf(items, viewerClerkID), nil
}

// Feed lists the latest answered questions across all users.
func (s *QuestionService) Feed(ctx context.Context, viewerClerkID string, page Page) ([]*model.AnsweredQuestion, error) {
	page = page.Clamp()
	items, err := s.questionRepository.AnsweredFeed(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return answeredViewsOf(items, viewerClerkID), nil
}

func viewOf(question *model.Question, viewerClerkID string) *model.Question {
	view := question.ViewFor(viewerClerkID)
	return &view
}

func viewsOf(questions []*model.Question, viewerClerkID string) []*model.Question {
	views := make([]*model.Question, 0, len(questions))
	for _, q := range questions {
		views = append(views, viewOf(q, viewerClerkID))
	}
	return views
}

func answeredViewsOf(items []*model.AnsweredQuestion, viewerClerkID string) []*model.AnsweredQuestion {
	views := make([]*model.AnsweredQuestion, 0, len(items))
	for _, item := range items {
		view := item.ViewFor(viewerClerkID)
		views = append(views, &view)
	}
	return views
}
