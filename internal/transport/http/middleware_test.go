package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmemory "github.com/inkpost/inkpost/internal/adapter/auth/memory"
	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

func okHandler(t *testing.T, wantID string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := CurrentIdentity(r)
		require.True(t, ok)
		assert.Equal(t, wantID, identity.ID)
		w.WriteHeader(http.StatusNoContent)
	})
}

func errorTitle(t *testing.T, body *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body.Body.Bytes(), &payload))
	return payload.Error
}

func TestRequireAuth(t *testing.T) {
	resolver := authmemory.NewResolver()
	resolver.Put("user-token", port.Identity{ID: "u1", Role: domain.RoleUser, EmailVerified: true})
	resolver.Put("admin-token", port.Identity{ID: "a1", Role: domain.RoleAdmin, EmailVerified: true})
	resolver.Put("unverified-token", port.Identity{ID: "u2", Role: domain.RoleUser, EmailVerified: false})

	t.Run("missing token", func(t *testing.T) {
		h := RequireAuth(resolver)(okHandler(t, ""))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", errorTitle(t, rec))
	})

	t.Run("unknown token", func(t *testing.T) {
		h := RequireAuth(resolver)(okHandler(t, ""))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bearer header", func(t *testing.T) {
		h := RequireAuth(resolver, domain.RoleUser)(okHandler(t, "u1"))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("session cookie", func(t *testing.T) {
		h := RequireAuth(resolver, domain.RoleUser)(okHandler(t, "u1"))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "user-token"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unverified email", func(t *testing.T) {
		h := RequireAuth(resolver, domain.RoleUser)(okHandler(t, "u2"))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer unverified-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Forbidden", errorTitle(t, rec))
	})

	t.Run("role not allowed", func(t *testing.T) {
		h := RequireAuth(resolver, domain.RoleAdmin)(okHandler(t, "u1"))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes admin gate", func(t *testing.T) {
		h := RequireAuth(resolver, domain.RoleAdmin)(okHandler(t, "a1"))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		resolver.Put("short-lived", port.Identity{ID: "u3", Role: domain.RoleUser, EmailVerified: true})
		resolver.Revoke("short-lived")
		h := RequireAuth(resolver, domain.RoleUser)(okHandler(t, "u3"))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer short-lived")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
