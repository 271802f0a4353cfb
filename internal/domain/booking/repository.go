package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shootdesk/shootdesk-api/internal/domain/crew"
	"github.com/shootdesk/shootdesk-api/internal/domain/shoot"
	"github.com/shootdesk/shootdesk-api/internal/pkg/logger"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

// Repository defines booking data access. Every method is scoped to one organization.
type Repository interface {
	CreateGraph(ctx context.Context, scope tenant.Scope, req *CreateBookingRequest, now time.Time) (int64, error)
	List(ctx context.Context, organizationID string, params ListParams) ([]*Booking, int, error)
	ListAll(ctx context.Context, organizationID string, sort []SortOption, filters Filters, limit int) ([]*Booking, error)
	Stats(ctx context.Context, organizationID string, now time.Time) (*Stats, error)
	Recent(ctx context.Context, organizationID string, limit int) ([]*Booking, error)
	Minimal(ctx context.Context, organizationID string, limit int) ([]*Summary, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingSelectColumns = `
	b.id, b.organization_id, b.name, b.booking_type, b.package_type,
	b.package_cost, b.note, b.status, b.created_at, b.updated_at,
	(
		SELECT c.name FROM booking_participants bp
		JOIN clients c ON c.id = bp.client_id
		WHERE bp.booking_id = b.id
		ORDER BY bp.id
		LIMIT 1
	) AS client_name
`

// CreateGraph inserts the booking with its participants, shoots, crew
// assignments, deliverables, received payments and payment schedules in one
// transaction. Any failure, including unknown crew ids, leaves no rows behind.
func (r *repository) CreateGraph(ctx context.Context, scope tenant.Scope, req *CreateBookingRequest, now time.Time) (int64, error) {
	orgID := scope.OrganizationID

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback()

	bookingID, err := insertBooking(ctx, tx, orgID, req, now)
	if err != nil {
		return 0, r.dbError(ctx, "bookings.insert", err)
	}

	for _, p := range req.Participants {
		clientID, err := insertClient(ctx, tx, orgID, &p, now)
		if err != nil {
			return 0, r.dbError(ctx, "clients.insert", err)
		}
		if err := insertParticipant(ctx, tx, bookingID, clientID, p.Role, now); err != nil {
			return 0, r.dbError(ctx, "booking_participants.insert", err)
		}
	}

	if len(req.Shoots) > 0 {
		if err := crew.CheckIDs(ctx, tx, orgID, shoot.ParseCrewIDs(req.crewGroups()...)); err != nil {
			return 0, err
		}

		for _, s := range req.Shoots {
			shootID, err := shoot.Insert(ctx, tx, &shoot.Shoot{
				BookingID:      bookingID,
				OrganizationID: orgID,
				Title:          s.Title,
				Date:           s.Date,
				Time:           s.Time,
				Location:       s.Location,
				Notes:          req.Note,
				CreatedAt:      now,
			})
			if err != nil {
				return 0, r.dbError(ctx, "shoots.insert", err)
			}

			crewIDs := shoot.ParseCrewIDs(s.Crews)
			assignments := make([]shoot.Assignment, len(crewIDs))
			for i, id := range crewIDs {
				assignments[i] = shoot.Assignment{
					ShootID:        shootID,
					CrewID:         id,
					OrganizationID: orgID,
					AssignedAt:     now,
				}
			}
			if err := shoot.Assign(ctx, tx, assignments); err != nil {
				return 0, r.dbError(ctx, "shoot_assignments.insert", err)
			}
		}
	}

	if len(req.Deliverables) > 0 {
		query := tx.Rebind(`
			INSERT INTO deliverables (booking_id, organization_id, title, is_package_included, cost, quantity, due_date, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		for _, d := range req.Deliverables {
			if _, err := tx.ExecContext(ctx, query,
				bookingID, orgID, d.Title, true, d.Cost, d.Quantity.Int64(), nullString(d.DueDate), now,
			); err != nil {
				return 0, r.dbError(ctx, "deliverables.insert", err)
			}
		}
	}

	if len(req.Payments) > 0 {
		query := tx.Rebind(`
			INSERT INTO received_amounts (booking_id, organization_id, amount, description, paid_on, invoice_id, created_at)
			VALUES (?, ?, ?, ?, ?, NULL, ?)
		`)
		for _, p := range req.Payments {
			if _, err := tx.ExecContext(ctx, query,
				bookingID, orgID, p.Amount, nullString(p.Description), p.Date, now,
			); err != nil {
				return 0, r.dbError(ctx, "received_amounts.insert", err)
			}
		}
	}

	if len(req.ScheduledPayments) > 0 {
		query := tx.Rebind(`
			INSERT INTO payment_schedules (booking_id, organization_id, amount, description, due_date, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		for _, s := range req.ScheduledPayments {
			if _, err := tx.ExecContext(ctx, query,
				bookingID, orgID, s.Amount, nullString(s.Description), s.DueDate, now,
			); err != nil {
				return 0, r.dbError(ctx, "payment_schedules.insert", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit booking tx: %w", err)
	}
	return bookingID, nil
}

func insertBooking(ctx context.Context, tx *sqlx.Tx, orgID string, req *CreateBookingRequest, now time.Time) (int64, error) {
	query := tx.Rebind(`
		INSERT INTO bookings (organization_id, name, booking_type, package_type, package_cost, note, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	var id int64
	err := tx.QueryRowxContext(ctx, query,
		orgID, req.BookingName, req.BookingType, req.PackageType, req.PackageCost,
		nullString(req.Note), StatusActive, now, now,
	).Scan(&id)
	return id, err
}

func insertClient(ctx context.Context, tx *sqlx.Tx, orgID string, p *ParticipantInput, now time.Time) (int64, error) {
	query := tx.Rebind(`
		INSERT INTO clients (organization_id, name, phone_number, email, address, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	var id int64
	err := tx.QueryRowxContext(ctx, query,
		orgID, p.Name, nullString(p.Phone), nullString(p.Email), nullString(p.Address), p.metadataValue(), now,
	).Scan(&id)
	return id, err
}

func insertParticipant(ctx context.Context, tx *sqlx.Tx, bookingID, clientID int64, role string, now time.Time) error {
	query := tx.Rebind(`
		INSERT INTO booking_participants (booking_id, client_id, role, created_at)
		VALUES (?, ?, ?, ?)
	`)
	_, err := tx.ExecContext(ctx, query, bookingID, clientID, role, now)
	return err
}

// dbError logs a failed write with its Postgres code and maps it to a domain error
func (r *repository) dbError(ctx context.Context, op string, err error) error {
	evt := logger.FromContext(ctx).Error().Str("query", op).Err(err)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		evt = evt.Str("pg_code", string(pqErr.Code)).Str("pg_constraint", pqErr.Constraint)
		evt.Msg("booking write failed")
		switch pqErr.Code {
		case "23503":
			return fmt.Errorf("%s: %w: %w", op, ErrInvalidReference, err)
		case "23514":
			return fmt.Errorf("%s: %w: %w", op, ErrConstraint, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	evt.Msg("booking write failed")
	return fmt.Errorf("%s: %w", op, err)
}

// where renders the organization scope plus filters
func where(organizationID string, f Filters) (string, []interface{}) {
	conditions := []string{"b.organization_id = ?"}
	args := []interface{}{organizationID}

	switch len(f.PackageTypes) {
	case 0:
	case 1:
		conditions = append(conditions, "b.package_type = ?")
		args = append(args, f.PackageTypes[0])
	default:
		conditions = append(conditions, "b.package_type IN (?)")
		args = append(args, f.PackageTypes)
	}

	if f.Name != "" {
		conditions = append(conditions, `LOWER(b.name) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.Name))
	}
	if f.CreatedFrom != nil {
		conditions = append(conditions, "b.created_at >= ?")
		args = append(args, f.CreatedFrom.UTC())
	}
	if f.CreatedTo != nil {
		conditions = append(conditions, "b.created_at < ?")
		args = append(args, f.CreatedTo.UTC())
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *repository) List(ctx context.Context, organizationID string, params ListParams) ([]*Booking, int, error) {
	whereClause, args := where(organizationID, params.Filters)

	countQuery, countArgs, err := sqlx.In("SELECT COUNT(*) FROM bookings b"+whereClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("build booking count: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	query := "SELECT " + bookingSelectColumns + " FROM bookings b" + whereClause +
		" ORDER BY " + orderBy(params.Sort) + " LIMIT ? OFFSET ?"
	query, pageArgs, err := sqlx.In(query, append(args, params.PerPage, params.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("build booking page: %w", err)
	}

	bookings := []*Booking{}
	if err := r.db.SelectContext(ctx, &bookings, r.db.Rebind(query), pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *repository) ListAll(ctx context.Context, organizationID string, sort []SortOption, filters Filters, limit int) ([]*Booking, error) {
	whereClause, args := where(organizationID, filters)

	query := "SELECT " + bookingSelectColumns + " FROM bookings b" + whereClause +
		" ORDER BY " + orderBy(sort) + " LIMIT ?"
	query, allArgs, err := sqlx.In(query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("build booking export: %w", err)
	}

	bookings := []*Booking{}
	if err := r.db.SelectContext(ctx, &bookings, r.db.Rebind(query), allArgs...); err != nil {
		return nil, fmt.Errorf("list bookings for export: %w", err)
	}
	return bookings, nil
}

func (r *repository) Stats(ctx context.Context, organizationID string, now time.Time) (*Stats, error) {
	query := r.db.Rebind(`
		SELECT
			(SELECT COUNT(*) FROM bookings WHERE organization_id = ?) AS total_bookings,
			(SELECT COUNT(*) FROM bookings WHERE organization_id = ? AND created_at >= ?) AS bookings_this_month,
			(SELECT COALESCE(SUM(package_cost), 0) FROM bookings WHERE organization_id = ?) AS total_package_value,
			(SELECT COALESCE(SUM(amount), 0) FROM received_amounts WHERE organization_id = ?) AS total_received,
			(SELECT COALESCE(SUM(amount), 0) FROM payment_schedules WHERE organization_id = ?) AS total_scheduled,
			(SELECT COUNT(*) FROM shoots s WHERE s.organization_id = ? AND s.date >= ?) AS upcoming_shoots
	`)

	var stats Stats
	err := r.db.GetContext(ctx, &stats, query,
		organizationID,
		organizationID, monthStart(now),
		organizationID,
		organizationID,
		organizationID,
		organizationID, now.UTC().Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}
	return &stats, nil
}

func (r *repository) Recent(ctx context.Context, organizationID string, limit int) ([]*Booking, error) {
	query := r.db.Rebind("SELECT " + bookingSelectColumns + ` FROM bookings b
		WHERE b.organization_id = ?
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT ?`)

	bookings := []*Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, organizationID, limit); err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) Minimal(ctx context.Context, organizationID string, limit int) ([]*Summary, error) {
	query := r.db.Rebind(`
		SELECT id, name FROM bookings
		WHERE organization_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`)

	items := []*Summary{}
	if err := r.db.SelectContext(ctx, &items, query, organizationID, limit); err != nil {
		return nil, fmt.Errorf("minimal bookings: %w", err)
	}
	return items, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
