package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPublicPath(t *testing.T) {
	public := []string{"/", "/auth/login", "/auth/register", "/_next/static/app.js", "/api/employees", "/favicon.ico", "/assets/logo.svg"}
	for _, p := range public {
		assert.True(t, IsPublicPath(p), p)
	}

	private := []string{"/dashboard", "/auth/login/extra", "/apis", "/_next", "/employees/42"}
	for _, p := range private {
		assert.False(t, IsPublicPath(p), p)
	}
}

func TestGatekeeper(t *testing.T) {
	var seen *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusOK)
	})

	t.Run("public path skips verification", func(t *testing.T) {
		stub := newStub()
		rec := httptest.NewRecorder()
		NewGatekeeper(stub, "/auth/login").Handler(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, stub.calls)
	})

	t.Run("no token redirects to login", func(t *testing.T) {
		stub := newStub()
		rec := httptest.NewRecorder()
		NewGatekeeper(stub, "/auth/login").Handler(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
		assert.Zero(t, stub.calls)
	})

	t.Run("rejected token redirects", func(t *testing.T) {
		stub := newStub()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired"})
		rec := httptest.NewRecorder()
		NewGatekeeper(stub, "/login").Handler(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.Equal(t, 1, stub.calls)
	})

	t.Run("valid token forwards identity headers", func(t *testing.T) {
		stub := newStub()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
		req.Header.Set(HeaderUserID, "spoofed")
		req.Header.Set(HeaderTenantID, "other-tenant")
		rec := httptest.NewRecorder()
		NewGatekeeper(stub, "/auth/login").Handler(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, []string{"u1"}, seen.Header.Values(HeaderUserID))
		assert.Equal(t, []string{"t1"}, seen.Header.Values(HeaderTenantID))
		assert.Equal(t, "spoofed", req.Header.Get(HeaderUserID), "caller's request is not mutated")

		claims, ok := ClaimsFromContext(seen.Context())
		assert.True(t, ok)
		assert.Equal(t, "u1", claims.UserID)
	})

	t.Run("tenant-less token drops the tenant header", func(t *testing.T) {
		stub := newStub()
		stub.claims.TenantID = ""
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer good")
		req.Header.Set(HeaderTenantID, "spoofed")
		rec := httptest.NewRecorder()
		NewGatekeeper(stub, "").Handler(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, seen.Header.Get(HeaderTenantID))
	})
}
