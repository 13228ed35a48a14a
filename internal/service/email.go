package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

// SendNewQuestionEmail tells a recipient that a question is waiting in their
// inbox. The question text is not included.
func (s *EmailService) SendNewQuestionEmail(ctx context.Context, email, name, locale string) error {
	inboxURL := fmt.Sprintf("%s/inbox", s.appURL)
	subject, body := newQuestionEmailTemplate(locale, name, inboxURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "new_question", "to", email, "subject", subject, "url", inboxURL)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "new_question", "to", email)
	}
	return err
}
