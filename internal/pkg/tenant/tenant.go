package tenant

import (
	"errors"
	"time"
)

var (
	// ErrUnauthenticated means no valid session backs the request
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNoOrganization means the session has no active organization
	ErrNoOrganization = errors.New("no active organization")
)

// Session is a resolved dashboard session
type Session struct {
	ID             string    `json:"sessionId"`
	UserID         string    `json:"userId"`
	OrganizationID string    `json:"activeOrganizationId,omitempty"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// Scope identifies who acts and on which organization's rows.
// Every repository query filters by OrganizationID.
type Scope struct {
	UserID         string
	OrganizationID string
}

// Scope returns the tenant scope of the session, or ErrNoOrganization
func (s *Session) Scope() (Scope, error) {
	if s == nil || s.UserID == "" {
		return Scope{}, ErrUnauthenticated
	}
	if s.OrganizationID == "" {
		return Scope{}, ErrNoOrganization
	}
	return Scope{UserID: s.UserID, OrganizationID: s.OrganizationID}, nil
}
