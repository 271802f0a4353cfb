package dashboard

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shootdesk/shootdesk-api/internal/middleware"
	"github.com/shootdesk/shootdesk-api/internal/pkg/errorhandler"
	"github.com/shootdesk/shootdesk-api/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates new dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RecentBookings returns the recent bookings widget
// GET /api/dashboard/recent-bookings
func (h *Handler) RecentBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, err := middleware.GetScope(ctx)
	if err != nil {
		response.NoOrganization(w)
		return
	}

	// unparseable limits fall back to the default
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.RecentBookings(ctx, scope, limit)
	if err != nil {
		errorhandler.HandleInternal(ctx, w, "Error fetching recent bookings", err)
		return
	}

	response.OK(w, result)
}

// Routes returns dashboard routes
func Routes(h *Handler, authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/recent-bookings", h.RecentBookings)

	return r
}
