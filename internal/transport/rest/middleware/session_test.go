package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filingdesk/internal/service"
)

func newTestRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()
	tokenSvc := service.NewTokenService("test-secret", time.Hour)
	token, err := tokenSvc.Issue("sess-123", "user-456", "divorce_intake")
	require.NoError(t, err)

	mw := NewSessionMiddleware(tokenSvc)
	r := mux.NewRouter()
	r.Use(mw.RequireSession)
	r.HandleFunc("/sessions/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetSessionID(r.Context()) + " " + GetUserID(r.Context())))
	})
	return r, token
}

func TestRequireSessionBearerToken(t *testing.T) {
	r, token := newTestRouter(t)

	req := httptest.NewRequest("GET", "/sessions/sess-123", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-123 user-456", rec.Body.String())
}

func TestRequireSessionQueryToken(t *testing.T) {
	r, token := newTestRouter(t)

	req := httptest.NewRequest("GET", "/sessions/sess-123?token="+token, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSessionMissingToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/sessions/sess-123", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionInvalidToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/sessions/sess-123", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionWrongSession(t *testing.T) {
	r, token := newTestRouter(t)

	req := httptest.NewRequest("GET", "/sessions/other-session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
