package session

import (
	"github.com/shootdesk/shootdesk-api/internal/domain/organization"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

// SwitchOrganizationRequest is the body of PUT /api/session/active-organization
type SwitchOrganizationRequest struct {
	OrganizationID string `json:"organizationId" validate:"required"`
}

// Response describes the current session
type Response struct {
	*tenant.Session
	Organizations []*organization.Membership `json:"organizations"`
}
