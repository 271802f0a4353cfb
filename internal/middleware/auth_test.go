package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

type fakeResolver struct {
	sessions map[string]*tenant.Session
	err      error
	calls    int
}

func (f *fakeResolver) Resolve(ctx context.Context, token string) (*tenant.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, tenant.ErrUnauthenticated
}

func protectedHandler(t *testing.T, resolver SessionResolver, reached *bool) http.Handler {
	t.Helper()
	return Session(resolver)(RequireOrganization(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		scope, err := GetScope(r.Context())
		require.NoError(t, err)
		assert.Equal(t, "org-1", scope.OrganizationID)
		w.WriteHeader(http.StatusOK)
	})))
}

func TestSessionRejectsMissingHeader(t *testing.T) {
	resolver := &fakeResolver{}
	reached := false

	w := httptest.NewRecorder()
	protectedHandler(t, resolver, &reached).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
	assert.False(t, reached)
	assert.Zero(t, resolver.calls)
}

func TestSessionRejectsUnknownToken(t *testing.T) {
	resolver := &fakeResolver{}
	reached := false

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w := httptest.NewRecorder()
	protectedHandler(t, resolver, &reached).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

func TestRequireOrganizationRejectsSessionWithoutOrganization(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*tenant.Session{
		"tok": {ID: "s1", UserID: "u1"},
	}}
	reached := false

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	protectedHandler(t, resolver, &reached).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"User not associated with an organization"}`, w.Body.String())
	assert.False(t, reached)
}

func TestSessionPassesScope(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*tenant.Session{
		"tok": {ID: "s1", UserID: "u1", OrganizationID: "org-1"},
	}}
	reached := false

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "bearer tok")
	w := httptest.NewRecorder()
	protectedHandler(t, resolver, &reached).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}

func TestSessionStoreFailureIsOpaque(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("dial tcp: connection refused")}
	reached := false

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	protectedHandler(t, resolver, &reached).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.False(t, reached)
}
