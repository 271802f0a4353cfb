package booking

import (
	"errors"
	"net/http"

	"github.com/shootdesk/shootdesk-api/internal/domain/crew"
	"github.com/shootdesk/shootdesk-api/internal/middleware"
	"github.com/shootdesk/shootdesk-api/internal/pkg/errorhandler"
	"github.com/shootdesk/shootdesk-api/internal/pkg/metrics"
	"github.com/shootdesk/shootdesk-api/internal/pkg/response"
	"github.com/shootdesk/shootdesk-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, err := middleware.GetScope(ctx)
	if err != nil {
		response.NoOrganization(w)
		return
	}

	var req CreateBookingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		metrics.IncBookingCreation(metrics.ResultInvalid)
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		metrics.IncBookingCreation(metrics.ResultInvalid)
		errorhandler.LogValidationError(ctx, errs)
		response.ValidationError(w, errs)
		return
	}

	bookingID, err := h.service.Create(ctx, scope, &req)
	if err != nil {
		var invalidCrew *crew.InvalidIDsError
		if errors.As(err, &invalidCrew) {
			response.InvalidReferences(w, "Invalid crew IDs", invalidCrew.IDs)
			return
		}
		errorhandler.HandleInternal(ctx, w, "Error creating booking", err)
		return
	}

	response.Created(w, CreatedResponse{BookingID: bookingID}, "Booking created successfully")
}

// List handles GET /api/bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, err := middleware.GetScope(ctx)
	if err != nil {
		response.NoOrganization(w)
		return
	}

	params := ParseListParams(ctx, r.URL.Query(), h.service.Paging())

	result, err := h.service.List(ctx, scope, params)
	if err != nil {
		errorhandler.HandleInternal(ctx, w, "Error fetching bookings", err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Minimal handles GET /api/bookings/minimal
func (h *Handler) Minimal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, err := middleware.GetScope(ctx)
	if err != nil {
		response.NoOrganization(w)
		return
	}

	items, err := h.service.Minimal(ctx, scope)
	if err != nil {
		errorhandler.HandleInternal(ctx, w, "Error fetching booking options", err)
		return
	}
	response.OK(w, items)
}

// Export handles POST /api/bookings/exports.
// Accepts the list filters and sort as query parameters; paging is ignored.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, err := middleware.GetScope(ctx)
	if err != nil {
		response.NoOrganization(w)
		return
	}

	params := ParseListParams(ctx, r.URL.Query(), h.service.Paging())

	result, err := h.service.Export(ctx, scope, params.Sort, params.Filters)
	if err != nil {
		if errors.Is(err, ErrNothingToExport) {
			response.NotFound(w, "No bookings match the filters")
			return
		}
		errorhandler.HandleInternal(ctx, w, "Error exporting bookings", err)
		return
	}
	response.Created(w, result, "Export created")
}
