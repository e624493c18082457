package middleware

import (
	"context"
	"net/http"

	"github.com/bookstore/backend/internal/models"
)

// SessionCookieName is the cookie carrying the opaque session token
const SessionCookieName = "session_token"

const sessionKey contextKey = "session"

// SessionValidator resolves a session token to a live session
type SessionValidator interface {
	// Method Validate resolves a session token.
	//
	// Absent, unknown and expired tokens all yield models.ErrNoSession.
	Validate(token string) (*models.Session, error)
}

// RequireSession validates the session cookie. A request without a valid
// session is redirected to the login page; the handler never runs. On
// success the session is stored in the request context.
func RequireSession(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				token = cookie.Value
			}

			sess, err := validator.Validate(token)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin redirects non-admin sessions to the home page. It must run
// after RequireSession, so an unauthenticated request on an admin path is
// redirected to login rather than home.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		if !ok || sess.Role != models.RoleAdmin {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionFromContext retrieves the validated session from context
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*models.Session)
	return sess, ok
}
