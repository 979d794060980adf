package rest

import (
	"context"
	"net/http"
	"time"

	"gumshoe/internal/ports"
)

type sessionContextKey struct{}

// sessionFromContext returns the authenticated session placed there by
// requireSession.
func sessionFromContext(ctx context.Context) (ports.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(ports.Session)
	return session, ok
}

// requireSession resolves the session cookie to a principal and rejects
// the request with a 403 otherwise.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.cookieName)
		if err != nil || cookie.Value == "" {
			h.writeUnauthenticated(w, r)
			return
		}

		session, err := h.svc.GetSession(r.Context(), cookie.Value)
		if err != nil || session.Expires.Before(time.Now().UTC()) {
			h.writeUnauthenticated(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) writeUnauthenticated(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusForbidden, map[string]any{
		"detail": "Authentication credentials were not provided.",
	})
}
