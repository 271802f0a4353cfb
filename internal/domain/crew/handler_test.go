package crew

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/shootdesk/shootdesk-api/internal/middleware"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

type fakeRepo struct {
	orgSeen string
}

func (f *fakeRepo) List(ctx context.Context, organizationID string) ([]*Crew, error) {
	f.orgSeen = organizationID
	return []*Crew{{ID: 7, Name: sql.NullString{String: "Dana", Valid: true}, Status: "busy"}}, nil
}

func TestHandlerListScopesToOrganization(t *testing.T) {
	repo := &fakeRepo{}
	inject := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithSession(r.Context(), &tenant.Session{ID: "s", UserID: "u1", OrganizationID: "org-1"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	router := chi.NewRouter()
	router.Mount("/api/crews", NewHandler(repo).Routes(inject))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/crews", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "org-1", repo.orgSeen)
	assert.JSONEq(t, `{"data":[{"id":7,"value":"7","name":"Dana","role":null,"status":"busy","label":"Dana [busy]"}]}`, w.Body.String())
}
