package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/bookstore/backend/internal/middleware"
	"github.com/bookstore/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BookService is the interface that wraps methods for catalog business logic.
type BookService interface {
	// Method List returns the full catalog in stable id order.
	List(ctx context.Context) ([]models.Book, error)
	// Method Get returns a single book by id.
	//
	// If no such book exists, models.ErrBookNotFound is returned together with "nil" value.
	Get(ctx context.Context, id int) (*models.Book, error)
	// Method Add creates a new book and returns it with its fresh id.
	Add(ctx context.Context, title, author, description string) (*models.Book, error)
	// Method Edit overwrites all three fields of an existing book.
	//
	// If no such book exists, models.ErrBookNotFound is returned.
	Edit(ctx context.Context, id int, title, author, description string) error
	// Method Remove deletes a book. Removing a nonexistent id is not an error.
	Remove(ctx context.Context, id int) error
}

// listPage is the view data for the storefront and admin listings
type listPage struct {
	User  *models.Session
	Books []models.Book
}

// bookFormPage is the view data for the add and edit forms
type bookFormPage struct {
	User *models.Session
	Book *models.Book
}

// BookHandler handles the book listing and admin CRUD pages
type BookHandler struct {
	BaseHandler
	bookService BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService BookService, templates *template.Template, logger *zap.Logger) *BookHandler {
	return &BookHandler{
		BaseHandler: BaseHandler{logger: logger, templates: templates},
		bookService: bookService,
	}
}

// RegisterRoutes registers the session-guarded routes. Admin routes stack
// the admin guard on top of the session guard, in that order, so an
// unauthenticated admin-path request lands on the login page.
func (h *BookHandler) RegisterRoutes(r chi.Router, requireSession, requireAdmin func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Get("/", h.Home)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/admin", h.Admin)
			r.Get("/add", h.AddPage)
			r.Post("/add", h.Add)
			r.Get("/edit/{id}", h.EditPage)
			r.Post("/edit/{id}", h.Edit)
			r.Get("/delete/{id}", h.Delete)
		})
	})
}

// Home handles GET /
func (h *BookHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "home.html")
}

// Admin handles GET /admin
func (h *BookHandler) Admin(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "admin.html")
}

func (h *BookHandler) renderList(w http.ResponseWriter, r *http.Request, name string) {
	sess, _ := middleware.SessionFromContext(r.Context())

	books, err := h.bookService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list books", zap.Error(err))
		h.serverError(w)
		return
	}

	h.render(w, http.StatusOK, name, listPage{User: sess, Books: books})
}

// AddPage handles GET /add
func (h *BookHandler) AddPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())
	h.render(w, http.StatusOK, "add.html", bookFormPage{User: sess})
}

// Add handles POST /add
func (h *BookHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse add form", zap.Error(err))
		h.serverError(w)
		return
	}

	_, err := h.bookService.Add(r.Context(),
		r.PostFormValue("title"),
		r.PostFormValue("author"),
		r.PostFormValue("description"),
	)
	if err != nil {
		h.logger.Error("failed to add book", zap.Error(err))
		h.serverError(w)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
}

// EditPage handles GET /edit/{id}
func (h *BookHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	sess, _ := middleware.SessionFromContext(r.Context())

	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrBookNotFound) {
			h.notFound(w)
			return
		}
		h.logger.Error("failed to get book", zap.Int("id", id), zap.Error(err))
		h.serverError(w)
		return
	}

	h.render(w, http.StatusOK, "edit.html", bookFormPage{User: sess, Book: book})
}

// Edit handles POST /edit/{id}
func (h *BookHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse edit form", zap.Error(err))
		h.serverError(w)
		return
	}

	err := h.bookService.Edit(r.Context(), id,
		r.PostFormValue("title"),
		r.PostFormValue("author"),
		r.PostFormValue("description"),
	)
	if err != nil {
		if errors.Is(err, models.ErrBookNotFound) {
			h.notFound(w)
			return
		}
		h.logger.Error("failed to update book", zap.Int("id", id), zap.Error(err))
		h.serverError(w)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
}

// Delete handles GET /delete/{id}. Deleting a missing id is a no-op.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.bookID(w, r)
	if !ok {
		return
	}

	if err := h.bookService.Remove(r.Context(), id); err != nil {
		h.logger.Error("failed to delete book", zap.Int("id", id), zap.Error(err))
		h.serverError(w)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusFound)
}

// bookID parses the {id} route parameter; a non-numeric id gets the
// not-found page and reports !ok.
func (h *BookHandler) bookID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w)
		return 0, false
	}
	return id, true
}
