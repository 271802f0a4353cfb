package dashboard

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootdesk/shootdesk-api/internal/domain/booking"
	"github.com/shootdesk/shootdesk-api/internal/middleware"
	"github.com/shootdesk/shootdesk-api/internal/pkg/storage"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
	"github.com/shootdesk/shootdesk-api/internal/pkg/testdb"
)

func TestHandlerRecentBookings(t *testing.T) {
	db := testdb.New(t)
	testdb.Organization(t, db, "org-1")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	testdb.Booking(t, db, "org-1", "Older", "gold", 1, base)
	newest := testdb.Booking(t, db, "org-1", "Newest", "gold", 1, base.Add(48*time.Hour))

	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/files")
	require.NoError(t, err)
	bookings := booking.NewService(booking.NewRepository(db), store, booking.Paging{DefaultPerPage: 10, MaxPerPage: 100})

	inject := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithSession(r.Context(), &tenant.Session{ID: "s", UserID: "u1", OrganizationID: "org-1"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	router := chi.NewRouter()
	router.Mount("/api/dashboard", Routes(NewHandler(NewService(bookings)), inject))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/recent-bookings?limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"data":{
		"bookings":[{"id":%d,"name":"Newest","clientName":null,"createdAt":"2025-06-03T12:00:00Z","createdAtLabel":"Jun 3, 2025"}],
		"viewAllUrl":"/bookings"
	}}`, newest), w.Body.String())
}
