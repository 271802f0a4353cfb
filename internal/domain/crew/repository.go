package crew

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines crew roster access
type Repository interface {
	List(ctx context.Context, organizationID string) ([]*Crew, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates crew repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, organizationID string) ([]*Crew, error) {
	query := r.db.Rebind(`
		SELECT c.id, c.organization_id, c.member_id,
			COALESCE(u.name, c.name) AS name, c.role, c.status
		FROM crews c
		LEFT JOIN members m ON m.id = c.member_id
		LEFT JOIN users u ON u.id = m.user_id
		WHERE c.organization_id = ?
		ORDER BY COALESCE(u.name, c.name), c.id
	`)
	crews := []*Crew{}
	if err := r.db.SelectContext(ctx, &crews, query, organizationID); err != nil {
		return nil, fmt.Errorf("list crews: %w", err)
	}
	return crews, nil
}

// InvalidIDs returns the ids, in the given order, that are not on the roster of
// organizationID. q may be a transaction so the check sees the caller's writes.
func InvalidIDs(ctx context.Context, q sqlx.ExtContext, organizationID string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id FROM crews WHERE organization_id = ? AND id IN (?)`, organizationID, ids)
	if err != nil {
		return nil, fmt.Errorf("build crew lookup: %w", err)
	}

	var found []int64
	if err := sqlx.SelectContext(ctx, q, &found, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("lookup crews: %w", err)
	}

	existing := make(map[int64]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}

	var invalid []int64
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	return invalid, nil
}

// CheckIDs fails with *InvalidIDsError when any id is off the roster
func CheckIDs(ctx context.Context, q sqlx.ExtContext, organizationID string, ids []int64) error {
	invalid, err := InvalidIDs(ctx, q, organizationID, ids)
	if err != nil {
		return err
	}
	if len(invalid) > 0 {
		return &InvalidIDsError{IDs: invalid}
	}
	return nil
}
