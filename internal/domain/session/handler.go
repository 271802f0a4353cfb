package session

import (
	"errors"
	"net/http"

	"github.com/shootdesk/shootdesk-api/internal/domain/organization"
	"github.com/shootdesk/shootdesk-api/internal/middleware"
	"github.com/shootdesk/shootdesk-api/internal/pkg/errorhandler"
	"github.com/shootdesk/shootdesk-api/internal/pkg/response"
	"github.com/shootdesk/shootdesk-api/internal/pkg/validator"
)

// Handler handles session HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates session handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /api/session
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		response.Unauthorized(w)
		return
	}

	resp, err := h.service.Describe(r.Context(), sess)
	if err != nil {
		errorhandler.HandleInternal(r.Context(), w, "describe session failed", err)
		return
	}
	response.OK(w, resp)
}

// SwitchOrganization handles PUT /api/session/active-organization
func (h *Handler) SwitchOrganization(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		response.Unauthorized(w)
		return
	}

	var req SwitchOrganizationRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	updated, err := h.service.SwitchOrganization(r.Context(), sess, req.OrganizationID)
	if err != nil {
		switch {
		case errors.Is(err, organization.ErrNotMember):
			response.Forbidden(w, "Not a member of this organization")
		case errors.Is(err, ErrSessionNotFound):
			response.Unauthorized(w)
		case errors.Is(err, ErrStoreUnavailable):
			response.Error(w, http.StatusServiceUnavailable, "Session store unavailable")
		default:
			errorhandler.HandleInternal(r.Context(), w, "switch organization failed", err)
		}
		return
	}
	response.OK(w, updated)
}

// Delete handles DELETE /api/session
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		response.Unauthorized(w)
		return
	}

	if err := h.service.Revoke(r.Context(), sess); err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			response.Error(w, http.StatusServiceUnavailable, "Session store unavailable")
			return
		}
		errorhandler.HandleInternal(r.Context(), w, "revoke session failed", err)
		return
	}
	response.NoContent(w)
}
