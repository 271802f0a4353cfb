package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootdesk/shootdesk-api/internal/middleware"
)

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	svc, _ := newTestService(t)
	token, _, err := svc.Issue(context.Background(), "u1", "org-1")
	require.NoError(t, err)
	return NewHandler(svc).Routes(middleware.Session(svc)), token
}

func TestHandlerGet(t *testing.T) {
	router, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			UserID               string `json:"userId"`
			ActiveOrganizationID string `json:"activeOrganizationId"`
			Organizations        []struct {
				ID string `json:"id"`
			} `json:"organizations"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.Data.UserID)
	assert.Equal(t, "org-1", body.Data.ActiveOrganizationID)
	assert.Len(t, body.Data.Organizations, 2)
}

func TestHandlerSwitchOrganizationRejectsNonMember(t *testing.T) {
	router, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/active-organization", strings.NewReader(`{"organizationId":"org-3"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandlerSwitchOrganizationValidates(t *testing.T) {
	router, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/active-organization", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"path":"organizationId"`)
}

func TestHandlerDeleteRevokes(t *testing.T) {
	router, token := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
