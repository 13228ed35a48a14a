package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/askbox/askbox/internal/metrics"
)

var ErrInvalidWebhook = errors.New("invalid webhook")

// IdentityWebhookService applies identity provider user events (Svix signed,
// which is the Standard Webhooks format) to local users.
type IdentityWebhookService struct {
	secret      string
	userService *UserService
}

func NewIdentityWebhookService(secret string, userService *UserService) *IdentityWebhookService {
	return &IdentityWebhookService{
		secret:      secret,
		userService: userService,
	}
}

type identityEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type identityUserData struct {
	ID                    string  `json:"id"`
	Username              *string `json:"username"`
	FirstName             *string `json:"first_name"`
	LastName              *string `json:"last_name"`
	ImageURL              string  `json:"image_url"`
	PrimaryEmailAddressID *string `json:"primary_email_address_id"`
	EmailAddresses        []struct {
		ID           string `json:"id"`
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

func (d identityUserData) identity() IdentityUser {
	u := IdentityUser{ClerkID: d.ID, ImageURL: d.ImageURL}
	if d.Username != nil {
		u.Username = *d.Username
	}
	if d.FirstName != nil {
		u.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		u.LastName = *d.LastName
	}
	for _, e := range d.EmailAddresses {
		if d.PrimaryEmailAddressID != nil && e.ID == *d.PrimaryEmailAddressID {
			u.Email = e.EmailAddress
		}
	}
	return u
}

// HandleWebhook verifies and applies one delivery. Unknown event types are
// acknowledged and ignored.
func (s *IdentityWebhookService) HandleWebhook(ctx context.Context, payload []byte, header http.Header) error {
	if s.secret == "" {
		slog.Warn("identity webhook secret not configured, skipping signature verification")
	} else {
		wh, err := standardwebhooks.NewWebhook(s.secret)
		if err != nil {
			return fmt.Errorf("failed to create webhook verifier: %w", err)
		}

		err = wh.Verify(payload, standardHeaders(header))
		if err != nil {
			metrics.WebhookEvents.WithLabelValues("unknown", "invalid_signature").Inc()
			return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
		}
	}

	var event identityEvent
	err := json.Unmarshal(payload, &event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	slog.Info("identity webhook received", "event_type", event.Type)

	switch event.Type {
	case "user.created", "user.updated":
		err = s.handleUserUpsert(ctx, event.Data)
	case "user.deleted":
		err = s.handleUserDeleted(ctx, event.Data)
	default:
		slog.Debug("identity webhook event ignored", "event_type", event.Type)
		// Event types come from the payload, so keep the label set closed.
		metrics.WebhookEvents.WithLabelValues("other", "ignored").Inc()
		return nil
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.WebhookEvents.WithLabelValues(event.Type, result).Inc()
	return err
}

// standardHeaders maps Svix header names onto the Standard Webhooks ones.
func standardHeaders(header http.Header) http.Header {
	out := http.Header{}
	for _, name := range []string{"id", "timestamp", "signature"} {
		value := header.Get("webhook-" + name)
		if value == "" {
			value = header.Get("svix-" + name)
		}
		out.Set("webhook-"+name, value)
	}
	return out
}

func (s *IdentityWebhookService) handleUserUpsert(ctx context.Context, data json.RawMessage) error {
	var user identityUserData
	err := json.Unmarshal(data, &user)
	if err != nil {
		return fmt.Errorf("%w: failed to parse user data: %v", ErrInvalidWebhook, err)
	}
	if user.ID == "" {
		return fmt.Errorf("%w: user event without id", ErrInvalidWebhook)
	}

	_, err = s.userService.SyncFromIdentity(ctx, user.identity())
	return err
}

func (s *IdentityWebhookService) handleUserDeleted(ctx context.Context, data json.RawMessage) error {
	var deleted struct {
		ID string `json:"id"`
	}
	err := json.Unmarshal(data, &deleted)
	if err != nil {
		return fmt.Errorf("%w: failed to parse deleted user: %v", ErrInvalidWebhook, err)
	}
	if deleted.ID == "" {
		return fmt.Errorf("%w: delete event without id", ErrInvalidWebhook)
	}

	err = s.userService.DeleteByClerkID(ctx, deleted.ID)
	if errors.Is(err, ErrUserNotFound) {
		// Redelivery, or a user that never used the app.
		return nil
	}
	return err
}
