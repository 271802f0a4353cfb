package organization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines organization data access
type Repository interface {
	GetByID(ctx context.Context, id string) (*Organization, error)
	IsMember(ctx context.Context, organizationID, userID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]*Membership, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates organization repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Organization, error) {
	query := r.db.Rebind(`SELECT id, name, slug, created_at FROM organizations WHERE id = ?`)
	var org Organization
	if err := r.db.GetContext(ctx, &org, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &org, nil
}

func (r *repository) IsMember(ctx context.Context, organizationID, userID string) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM members WHERE organization_id = ? AND user_id = ?`)
	var n int
	if err := r.db.GetContext(ctx, &n, query, organizationID, userID); err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return n > 0, nil
}

func (r *repository) ListForUser(ctx context.Context, userID string) ([]*Membership, error) {
	query := r.db.Rebind(`
		SELECT m.organization_id, o.name, o.slug, m.role
		FROM members m
		JOIN organizations o ON o.id = m.organization_id
		WHERE m.user_id = ?
		ORDER BY o.name, o.id
	`)
	memberships := []*Membership{}
	if err := r.db.SelectContext(ctx, &memberships, query, userID); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}
