package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/askbox/askbox/internal/ctxkeys"
	"github.com/askbox/askbox/internal/handler"
	"github.com/askbox/askbox/internal/service"
)

// SessionCookie is the cookie the identity provider's frontend SDK sets.
const SessionCookie = "__session"

// AuthMiddleware verifies the session token, when present, and puts the
// caller's identity into the context. Missing or invalid tokens continue as
// an anonymous request.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			clerkID, err := authService.VerifySession(token)
			if err != nil {
				slog.Debug("ignoring invalid session", "error", err, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithClerkID(r.Context(), clerkID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionToken prefers the Authorization header over the cookie.
func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RequireAuth rejects anonymous requests with an Unauthenticated envelope.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.ClerkID(r.Context()) == "" {
			handler.WriteErrorKind(w, service.KindUnauthenticated)
			return
		}
		next(w, r)
	}
}
