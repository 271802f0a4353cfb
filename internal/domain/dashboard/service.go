package dashboard

import (
	"context"
	"time"

	"github.com/shootdesk/shootdesk-api/internal/domain/booking"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

const (
	defaultRecentLimit = 5
	maxRecentLimit     = 20

	// ViewAllURL is where the widget links to the full booking list
	ViewAllURL = "/bookings"

	createdAtLabelLayout = "Jan 2, 2006"
)

// BookingSource is the part of the booking service the dashboard reads from
type BookingSource interface {
	Recent(ctx context.Context, scope tenant.Scope, limit int) ([]*booking.Booking, error)
}

// RecentBooking is one row of the recent bookings widget
type RecentBooking struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	ClientName     *string   `json:"clientName"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedAtLabel string    `json:"createdAtLabel"`
}

// RecentBookings is the widget payload
type RecentBookings struct {
	Bookings   []*RecentBooking `json:"bookings"`
	ViewAllURL string           `json:"viewAllUrl"`
}

// Service assembles dashboard widgets
type Service struct {
	bookings BookingSource
}

// NewService creates dashboard service
func NewService(bookings BookingSource) *Service {
	return &Service{bookings: bookings}
}

// RecentBookings returns the newest bookings of the organization, newest first
func (s *Service) RecentBookings(ctx context.Context, scope tenant.Scope, limit int) (*RecentBookings, error) {
	rows, err := s.bookings.Recent(ctx, scope, clampLimit(limit))
	if err != nil {
		return nil, err
	}

	items := make([]*RecentBooking, len(rows))
	for i, b := range rows {
		item := &RecentBooking{
			ID:             b.ID,
			Name:           b.Name,
			CreatedAt:      b.CreatedAt,
			CreatedAtLabel: b.CreatedAt.UTC().Format(createdAtLabelLayout),
		}
		if b.ClientName.Valid {
			name := b.ClientName.String
			item.ClientName = &name
		}
		items[i] = item
	}

	return &RecentBookings{Bookings: items, ViewAllURL: ViewAllURL}, nil
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultRecentLimit
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}
