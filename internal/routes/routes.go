package routes

import (
	"net/http"

	"github.com/askbox/askbox/internal/app"
	"github.com/askbox/askbox/internal/handler"
	"github.com/askbox/askbox/internal/metrics"
	"github.com/askbox/askbox/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	user := handler.NewUserHandler(app.UserService, app.QuestionService)
	question := handler.NewQuestionHandler(app.QuestionService, app.UserService)
	answer := handler.NewAnswerHandler(app.AnswerService)
	webhook := handler.NewWebhookHandler(app.IdentityWebhookService)

	// Limiter lifetime belongs to the app; App.Close stops it
	rateLimited := middleware.RateLimit(app.QuestionLimiter, app.Cfg.TrustProxyHeaders)

	mux := http.NewServeMux()

	// ============================================================================
	// OPERATIONS
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.Handle("GET /metrics", metrics.Handler())

	// ============================================================================
	// PUBLIC API
	// ============================================================================

	mux.HandleFunc("GET /api/users/{username}", user.Profile)
	mux.HandleFunc("POST /api/users/{username}/questions", rateLimited(question.Create))
	mux.HandleFunc("GET /api/feed", question.Feed)
	mux.HandleFunc("GET /api/questions/{id}", question.Get)

	// ============================================================================
	// SIGNED-IN API
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(user.Me))
	mux.HandleFunc("PATCH /api/me", middleware.RequireAuth(user.UpdateMe))
	mux.HandleFunc("PUT /api/me/security-level", middleware.RequireAuth(user.UpdateSecurityLevel))
	mux.HandleFunc("PUT /api/me/referrer", middleware.RequireAuth(user.SetReferrer))

	// Inbox
	mux.HandleFunc("GET /api/me/questions", middleware.RequireAuth(question.Inbox))
	mux.HandleFunc("GET /api/me/questions/declined", middleware.RequireAuth(question.Declined))

	// Lifecycle
	mux.HandleFunc("POST /api/questions/{id}/answer", middleware.RequireAuth(answer.Create))
	mux.HandleFunc("DELETE /api/questions/{id}", middleware.RequireAuth(question.Delete))
	mux.HandleFunc("POST /api/questions/{id}/restore", middleware.RequireAuth(question.Restore))
	mux.HandleFunc("DELETE /api/answers/{id}", middleware.RequireAuth(answer.Delete))
	mux.HandleFunc("POST /api/answers/{id}/restore", middleware.RequireAuth(answer.Restore))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	mux.HandleFunc("POST /webhooks/clerk", webhook.Clerk)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.AuthMiddleware(app.AuthService),
		middleware.RequestLogging, // Must wrap mux directly so r.Pattern is set for metrics
	)

	return handler
}
