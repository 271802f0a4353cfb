package organization

import "time"

// Organization is a studio account; every booking row belongs to one
type Organization struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Membership is an organization seen from one of its members
type Membership struct {
	OrganizationID string `db:"organization_id" json:"id"`
	Name           string `db:"name" json:"name"`
	Slug           string `db:"slug" json:"slug"`
	Role           string `db:"role" json:"role"`
}
