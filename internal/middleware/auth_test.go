package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookstore/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubValidator resolves a single known token
type stubValidator struct {
	token string
	sess  *models.Session
}

func (v *stubValidator) Validate(token string) (*models.Session, error) {
	if token != "" && token == v.token {
		return v.sess, nil
	}
	return nil, models.ErrNoSession
}

func adminSession() *models.Session {
	return &models.Session{
		Token:     "admin-token",
		UserID:    1,
		Username:  "admin",
		Role:      models.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func userSession() *models.Session {
	return &models.Session{
		Token:     "user-token",
		UserID:    2,
		Username:  "user",
		Role:      models.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// okHandler records whether it ran and what session it saw
func okHandler(ran *bool, seen **models.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*ran = true
		if seen != nil {
			if sess, ok := SessionFromContext(r.Context()); ok {
				*seen = sess
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name             string
		cookie           *http.Cookie
		expectedStatus   int
		expectedLocation string
		expectHandlerRun bool
	}{
		{
			name:             "no cookie redirects to login",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/login",
		},
		{
			name:             "unknown token redirects to login",
			cookie:           &http.Cookie{Name: SessionCookieName, Value: "stale-token"},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/login",
		},
		{
			name:             "valid token proceeds",
			cookie:           &http.Cookie{Name: SessionCookieName, Value: "user-token"},
			expectedStatus:   http.StatusOK,
			expectHandlerRun: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &stubValidator{token: "user-token", sess: userSession()}

			var ran bool
			var seen *models.Session
			handler := RequireSession(validator)(okHandler(&ran, &seen))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			assert.Equal(t, tt.expectHandlerRun, ran)
			if tt.expectHandlerRun {
				require.NotNil(t, seen)
				assert.Equal(t, "user", seen.Username)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin session proceeds", func(t *testing.T) {
		validator := &stubValidator{token: "admin-token", sess: adminSession()}

		var ran bool
		handler := RequireSession(validator)(RequireAdmin(okHandler(&ran, nil)))

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "admin-token"})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, ran)
	})

	t.Run("non-admin session redirects home", func(t *testing.T) {
		validator := &stubValidator{token: "user-token", sess: userSession()}

		var ran bool
		handler := RequireSession(validator)(RequireAdmin(okHandler(&ran, nil)))

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "user-token"})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.False(t, ran)
	})

	t.Run("unauthenticated admin request redirects to login, not home", func(t *testing.T) {
		validator := &stubValidator{}

		var ran bool
		handler := RequireSession(validator)(RequireAdmin(okHandler(&ran, nil)))

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.False(t, ran)
	})

	t.Run("admin guard without session guard redirects home", func(t *testing.T) {
		var ran bool
		handler := RequireAdmin(okHandler(&ran, nil))

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.False(t, ran)
	})
}
