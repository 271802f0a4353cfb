package shoot

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Insert writes one shoot row and returns its id
func Insert(ctx context.Context, q sqlx.ExtContext, s *Shoot) (int64, error) {
	query := q.Rebind(`
		INSERT INTO shoots (booking_id, organization_id, title, date, time, location, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	var id int64
	err := q.QueryRowxContext(ctx, query,
		s.BookingID, s.OrganizationID, s.Title, s.Date, s.Time,
		nullString(s.Location), nullString(s.Notes), s.CreatedAt, s.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert shoot: %w", err)
	}
	return id, nil
}

// Assign writes one assignment row per entry
func Assign(ctx context.Context, q sqlx.ExtContext, assignments []Assignment) error {
	query := q.Rebind(`
		INSERT INTO shoot_assignments (shoot_id, crew_id, organization_id, is_lead, assigned_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	for _, a := range assignments {
		if _, err := q.ExecContext(ctx, query,
			a.ShootID, a.CrewID, a.OrganizationID, a.IsLead, a.AssignedAt, a.AssignedAt, a.AssignedAt,
		); err != nil {
			return fmt.Errorf("insert shoot assignment: %w", err)
		}
	}
	return nil
}

// ParseCrewIDs converts crew ids to integers, dropping duplicates and keeping
// first-seen order. Values that are not integers are skipped.
func ParseCrewIDs(groups ...[]string) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, group := range groups {
		for _, raw := range group {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
