package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shootdesk/shootdesk-api/internal/domain/organization"
	"github.com/shootdesk/shootdesk-api/internal/pkg/jwt"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

// Service issues, resolves and updates dashboard sessions.
// Without a store, sessions are stateless: the token claims are the session.
type Service struct {
	tokens *jwt.Service
	store  Store
	orgs   organization.Repository
}

// NewService creates session service. store may be nil.
func NewService(tokens *jwt.Service, store Store, orgs organization.Repository) *Service {
	return &Service{tokens: tokens, store: store, orgs: orgs}
}

// Resolve turns a bearer token into the live session. It never touches the database.
func (s *Service) Resolve(ctx context.Context, token string) (*tenant.Session, error) {
	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, tenant.ErrUnauthenticated
	}

	if s.store == nil {
		sess := &tenant.Session{
			ID:             claims.SessionID,
			UserID:         claims.UserID,
			OrganizationID: claims.OrganizationID,
		}
		if claims.ExpiresAt != nil {
			sess.ExpiresAt = claims.ExpiresAt.Time
		}
		return sess, nil
	}

	sess, err := s.store.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, tenant.ErrUnauthenticated
		}
		return nil, err
	}
	if sess.UserID != claims.UserID {
		log.Warn().Str("session_id", claims.SessionID).Msg("session user does not match token subject")
		return nil, tenant.ErrUnauthenticated
	}
	return sess, nil
}

// Issue opens a session for userID with organizationID active (may be empty)
func (s *Service) Issue(ctx context.Context, userID, organizationID string) (string, *tenant.Session, error) {
	if organizationID != "" {
		if err := s.checkMember(ctx, organizationID, userID); err != nil {
			return "", nil, err
		}
	}

	token, sessionID, expiresAt, err := s.tokens.IssueSessionToken(userID, organizationID)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	sess := &tenant.Session{
		ID:             sessionID,
		UserID:         userID,
		OrganizationID: organizationID,
		ExpiresAt:      expiresAt,
	}
	if s.store != nil {
		if err := s.store.Create(ctx, sess); err != nil {
			return "", nil, err
		}
	}
	return token, sess, nil
}

// SwitchOrganization makes organizationID the active organization of sess
func (s *Service) SwitchOrganization(ctx context.Context, sess *tenant.Session, organizationID string) (*tenant.Session, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	if err := s.checkMember(ctx, organizationID, sess.UserID); err != nil {
		return nil, err
	}
	if err := s.store.SetActiveOrganization(ctx, sess.ID, organizationID); err != nil {
		return nil, err
	}

	updated := *sess
	updated.OrganizationID = organizationID
	return &updated, nil
}

// Revoke ends the session
func (s *Service) Revoke(ctx context.Context, sess *tenant.Session) error {
	if s.store == nil {
		return ErrStoreUnavailable
	}
	return s.store.Delete(ctx, sess.ID)
}

// Describe returns the session with the organizations its user can switch to
func (s *Service) Describe(ctx context.Context, sess *tenant.Session) (*Response, error) {
	memberships, err := s.orgs.ListForUser(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return &Response{Session: sess, Organizations: memberships}, nil
}

func (s *Service) checkMember(ctx context.Context, organizationID, userID string) error {
	ok, err := s.orgs.IsMember(ctx, organizationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return organization.ErrNotMember
	}
	return nil
}
