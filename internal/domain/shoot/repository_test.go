package shoot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootdesk/shootdesk-api/internal/domain/crew"
	"github.com/shootdesk/shootdesk-api/internal/pkg/testdb"
)

func newShoot(bookingID int64, org string) *Shoot {
	return &Shoot{
		BookingID:      bookingID,
		OrganizationID: org,
		Title:          "Ceremony",
		Date:           "2025-06-01",
		Time:           "10:00",
		Location:       "Hall",
		CreatedAt:      time.Now().UTC(),
	}
}

func TestRepositoryCreateWithAssignments(t *testing.T) {
	db := testdb.New(t)
	testdb.Organization(t, db, "org-1")
	bookingID := testdb.Booking(t, db, "org-1", "Smith Wedding", "gold", 5000, time.Now())
	c1 := testdb.Crew(t, db, "org-1", "Dana", "photographer", "available")
	c2 := testdb.Crew(t, db, "org-1", "Eli", "videographer", "available")

	id, err := NewRepository(db).Create(context.Background(), newShoot(bookingID, "org-1"), []int64{c1, c2})
	require.NoError(t, err)
	assert.Positive(t, id)

	assert.Equal(t, 1, testdb.Count(t, db, "shoots"))
	assert.Equal(t, 2, testdb.Count(t, db, "shoot_assignments"))

	var leads int
	require.NoError(t, db.Get(&leads, `SELECT COUNT(*) FROM shoot_assignments WHERE is_lead = 1`))
	assert.Zero(t, leads)
}

func TestRepositoryCreateRejectsForeignBooking(t *testing.T) {
	db := testdb.New(t)
	testdb.Organization(t, db, "org-1")
	testdb.Organization(t, db, "org-2")
	bookingID := testdb.Booking(t, db, "org-2", "Other", "gold", 100, time.Now())

	_, err := NewRepository(db).Create(context.Background(), newShoot(bookingID, "org-1"), nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Zero(t, testdb.Count(t, db, "shoots"))
}

func TestRepositoryCreateRejectsInvalidCrew(t *testing.T) {
	db := testdb.New(t)
	testdb.Organization(t, db, "org-1")
	testdb.Organization(t, db, "org-2")
	bookingID := testdb.Booking(t, db, "org-1", "Smith Wedding", "gold", 5000, time.Now())
	own := testdb.Crew(t, db, "org-1", "Dana", "photographer", "available")
	foreign := testdb.Crew(t, db, "org-2", "Eli", "videographer", "available")

	_, err := NewRepository(db).Create(context.Background(), newShoot(bookingID, "org-1"), []int64{own, foreign, 404})

	var invalid *crew.InvalidIDsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []int64{foreign, 404}, invalid.IDs)
	assert.Zero(t, testdb.Count(t, db, "shoots"))
	assert.Zero(t, testdb.Count(t, db, "shoot_assignments"))
}

func TestParseCrewIDs(t *testing.T) {
	ids := ParseCrewIDs([]string{"7", "3", "7"}, []string{" 3", "9", "x"})
	assert.Equal(t, []int64{7, 3, 9}, ids)
	assert.Empty(t, ParseCrewIDs(nil))
}
