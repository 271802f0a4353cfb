package shoot

import "time"

// Shoot is a scheduled session under a booking
type Shoot struct {
	BookingID      int64
	OrganizationID string
	Title          string
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
	Location       string
	Notes          string
	CreatedAt      time.Time
}

// Assignment links a shoot to a roster entry
type Assignment struct {
	ShootID        int64
	CrewID         int64
	OrganizationID string
	IsLead         bool
	AssignedAt     time.Time
}
