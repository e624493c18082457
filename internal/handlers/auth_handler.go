package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/bookstore/backend/internal/middleware"
	"github.com/bookstore/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Authenticate checks the submitted credentials and mints a session on success.
	//
	// Unknown username and wrong password both return models.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*models.Session, error)
	// Method EndSession invalidates a session token. Ending an unknown session is not an error.
	EndSession(token string)
}

// loginPage is the view data for the login form
type loginPage struct {
	Error string
}

// AuthHandler handles the login and logout pages
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, templates *template.Template, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger, templates: templates},
		authService: authService,
	}
}

// RegisterRoutes registers the unauthenticated routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login.html", loginPage{})
}

// Login handles POST /login. On success it sets the session cookie and
// redirects by role; on bad credentials it re-renders the form inline.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "login.html", loginPage{Error: "Could not read the form."})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	sess, err := h.authService.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.render(w, http.StatusOK, "login.html", loginPage{Error: "Incorrect username or password."})
			return
		}
		h.logger.Error("failed to authenticate user", zap.Error(err))
		h.serverError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	target := "/"
	if sess.Role == models.RoleAdmin {
		target = "/admin"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.EndSession(cookie.Value)
	}

	// Expire the cookie regardless of whether a session existed
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusFound)
}
