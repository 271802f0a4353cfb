package booking

import (
	"database/sql"
	"time"
)

// StatusActive is the status new bookings start in
const StatusActive = "active"

// Booking is a booking row joined with the name of its first participant
type Booking struct {
	ID             int64          `db:"id"`
	OrganizationID string         `db:"organization_id"`
	Name           string         `db:"name"`
	BookingType    string         `db:"booking_type"`
	PackageType    string         `db:"package_type"`
	PackageCost    float64        `db:"package_cost"`
	Note           sql.NullString `db:"note"`
	Status         string         `db:"status"`
	ClientName     sql.NullString `db:"client_name"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// Summary is the id and name pair used by booking pickers
type Summary struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Stats are organization-wide aggregates shown above the booking list
type Stats struct {
	TotalBookings     int     `db:"total_bookings" json:"totalBookings"`
	BookingsThisMonth int     `db:"bookings_this_month" json:"bookingsThisMonth"`
	TotalPackageValue float64 `db:"total_package_value" json:"totalPackageValue"`
	TotalReceived     float64 `db:"total_received" json:"totalReceived"`
	TotalScheduled    float64 `db:"total_scheduled" json:"totalScheduled"`
	UpcomingShoots    int     `db:"upcoming_shoots" json:"upcomingShoots"`
}
