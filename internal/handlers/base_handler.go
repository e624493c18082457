package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

// BaseHandler provides common page-rendering functionality
type BaseHandler struct {
	logger    *zap.Logger
	templates *template.Template
}

// render executes a page template into a buffer first, so a template
// failure can still become a clean 500 instead of a half-written page.
func (h *BaseHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write response", zap.String("template", name), zap.Error(err))
	}
}

// serverError renders the generic error page
func (h *BaseHandler) serverError(w http.ResponseWriter) {
	h.render(w, http.StatusInternalServerError, "error.html", nil)
}

// notFound renders the not-found page
func (h *BaseHandler) notFound(w http.ResponseWriter) {
	h.render(w, http.StatusNotFound, "notfound.html", nil)
}
