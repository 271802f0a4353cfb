package crew

import "database/sql"

// StatusAvailable is the roster status that needs no annotation in pickers
const StatusAvailable = "available"

// Crew is a roster entry of an organization. Members of the organization
// appear under their user name; external crew carry their own name.
type Crew struct {
	ID             int64          `db:"id"`
	OrganizationID string         `db:"organization_id"`
	MemberID       sql.NullInt64  `db:"member_id"`
	Name           sql.NullString `db:"name"`
	Role           sql.NullString `db:"role"`
	Status         string         `db:"status"`
}
