package shoot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shootdesk/shootdesk-api/internal/domain/crew"
)

// Repository defines shoot persistence
type Repository interface {
	Create(ctx context.Context, s *Shoot, crewIDs []int64) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates shoot repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the shoot and its crew assignments in one transaction.
// The booking must belong to the shoot's organization and every crew id
// must be on its roster.
func (r *repository) Create(ctx context.Context, s *Shoot, crewIDs []int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin shoot tx: %w", err)
	}
	defer tx.Rollback()

	var n int
	query := tx.Rebind(`SELECT COUNT(*) FROM bookings WHERE id = ? AND organization_id = ?`)
	if err := tx.GetContext(ctx, &n, query, s.BookingID, s.OrganizationID); err != nil {
		return 0, fmt.Errorf("check booking: %w", err)
	}
	if n == 0 {
		return 0, ErrBookingNotFound
	}

	if err := crew.CheckIDs(ctx, tx, s.OrganizationID, crewIDs); err != nil {
		return 0, err
	}

	shootID, err := Insert(ctx, tx, s)
	if err != nil {
		return 0, err
	}

	assignments := make([]Assignment, len(crewIDs))
	for i, id := range crewIDs {
		assignments[i] = Assignment{
			ShootID:        shootID,
			CrewID:         id,
			OrganizationID: s.OrganizationID,
			AssignedAt:     s.CreatedAt,
		}
	}
	if err := Assign(ctx, tx, assignments); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit shoot tx: %w", err)
	}
	return shootID, nil
}
