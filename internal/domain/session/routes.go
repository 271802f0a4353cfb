package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns session router. Only a valid session is required here;
// an active organization is what these routes let the caller choose.
func (h *Handler) Routes(sessionMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMiddleware)

	r.Get("/", h.Get)
	r.Delete("/", h.Delete)
	r.Put("/active-organization", h.SwitchOrganization)

	return r
}
