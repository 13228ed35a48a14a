package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/askbox/askbox/internal/service"
)

type WebhookHandler struct {
	identityWebhookService *service.IdentityWebhookService
}

func NewWebhookHandler(identityWebhookService *service.IdentityWebhookService) *WebhookHandler {
	return &WebhookHandler{
		identityWebhookService: identityWebhookService,
	}
}

// Clerk receives identity provider user events. A non-2xx response makes the
// provider redeliver, so only verification failures get a 400.
func (h *WebhookHandler) Clerk(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		slog.Error("failed to read webhook body", "error", err)
		WriteErrorKind(w, service.KindValidationFailed)
		return
	}

	err = h.identityWebhookService.HandleWebhook(r.Context(), payload, r.Header)
	if errors.Is(err, service.ErrInvalidWebhook) {
		slog.Warn("rejected identity webhook", "error", err)
		WriteErrorKind(w, service.KindValidationFailed)
		return
	}
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, nil)
}
