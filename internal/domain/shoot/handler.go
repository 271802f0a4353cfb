package shoot

import (
	"errors"
	"net/http"

	"github.com/shootdesk/shootdesk-api/internal/domain/crew"
	"github.com/shootdesk/shootdesk-api/internal/middleware"
	"github.com/shootdesk/shootdesk-api/internal/pkg/errorhandler"
	"github.com/shootdesk/shootdesk-api/internal/pkg/response"
	"github.com/shootdesk/shootdesk-api/internal/pkg/validator"
)

// Handler handles shoot HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates shoot handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/shoots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, err := middleware.GetScope(ctx)
	if err != nil {
		response.NoOrganization(w)
		return
	}

	var req CreateShootRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(ctx, errs)
		response.ValidationError(w, errs)
		return
	}

	shootID, err := h.service.Create(ctx, scope, &req)
	if err != nil {
		var invalidCrew *crew.InvalidIDsError
		switch {
		case errors.As(err, &invalidCrew):
			response.InvalidReferences(w, "Invalid crew IDs", invalidCrew.IDs)
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		default:
			errorhandler.HandleInternal(ctx, w, "create shoot failed", err)
		}
		return
	}

	response.Created(w, CreatedResponse{ShootID: shootID}, "Shoot scheduled successfully")
}
