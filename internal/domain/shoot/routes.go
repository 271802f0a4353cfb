package shoot

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns shoot router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/", h.Create)
	return r
}
