package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootdesk/shootdesk-api/internal/domain/booking"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

type fakeBookings struct {
	rows      []*booking.Booking
	err       error
	lastLimit int
	lastScope tenant.Scope
}

func (f *fakeBookings) Recent(_ context.Context, scope tenant.Scope, limit int) ([]*booking.Booking, error) {
	f.lastLimit = limit
	f.lastScope = scope
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

var scope = tenant.Scope{UserID: "u1", OrganizationID: "org-1"}

func TestRecentBookingsLabels(t *testing.T) {
	src := &fakeBookings{rows: []*booking.Booking{
		{ID: 2, Name: "Smith Wedding", ClientName: sql.NullString{String: "Anna", Valid: true}, CreatedAt: time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC)},
		{ID: 1, Name: "Jones Portraits", CreatedAt: time.Date(2024, 12, 31, 8, 0, 0, 0, time.UTC)},
	}}

	result, err := NewService(src).RecentBookings(context.Background(), scope, 0)
	require.NoError(t, err)

	assert.Equal(t, defaultRecentLimit, src.lastLimit)
	assert.Equal(t, scope, src.lastScope)
	assert.Equal(t, "/bookings", result.ViewAllURL)
	require.Len(t, result.Bookings, 2)

	assert.Equal(t, "Jun 9, 2025", result.Bookings[0].CreatedAtLabel)
	require.NotNil(t, result.Bookings[0].ClientName)
	assert.Equal(t, "Anna", *result.Bookings[0].ClientName)

	assert.Equal(t, "Dec 31, 2024", result.Bookings[1].CreatedAtLabel)
	assert.Nil(t, result.Bookings[1].ClientName)
}

func TestRecentBookingsLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, defaultRecentLimit},
		{0, defaultRecentLimit},
		{1, 1},
		{20, 20},
		{500, maxRecentLimit},
	}
	for _, tt := range tests {
		src := &fakeBookings{}
		_, err := NewService(src).RecentBookings(context.Background(), scope, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, src.lastLimit, "limit %d", tt.in)
	}
}

func TestRecentBookingsError(t *testing.T) {
	src := &fakeBookings{err: errors.New("db down")}

	_, err := NewService(src).RecentBookings(context.Background(), scope, 5)
	assert.Error(t, err)
}
