package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router. exportLimit guards spreadsheet generation.
func (h *Handler) Routes(authMiddleware, exportLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/minimal", h.Minimal)
	r.With(exportLimit).Post("/exports", h.Export)

	return r
}
