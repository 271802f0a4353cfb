package crew

import (
	"net/http"

	"github.com/shootdesk/shootdesk-api/internal/middleware"
	"github.com/shootdesk/shootdesk-api/internal/pkg/errorhandler"
	"github.com/shootdesk/shootdesk-api/internal/pkg/response"
)

// Handler handles crew HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates crew handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /api/crews
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.GetScope(r.Context())
	if err != nil {
		response.NoOrganization(w)
		return
	}

	crews, err := h.repo.List(r.Context(), scope.OrganizationID)
	if err != nil {
		errorhandler.HandleInternal(r.Context(), w, "list crews failed", err)
		return
	}

	items := make([]*OptionResponse, len(crews))
	for i, c := range crews {
		items[i] = OptionFromEntity(c)
	}
	response.OK(w, items)
}
