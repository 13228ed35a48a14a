package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/askbox/askbox/internal/service"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	if err != nil {
		slog.Error("health check failed", "error", err)
		writeFailure(w, envelope{Error: service.KindInternalError})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
