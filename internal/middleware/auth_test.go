package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-payroll/internal/token"
)

// stubVerifier accepts exactly one token and counts calls.
type stubVerifier struct {
	valid  string
	claims token.Claims
	calls  int
}

func (s *stubVerifier) Verify(raw string) (token.Claims, error) {
	s.calls++
	if raw != s.valid {
		return token.Claims{}, errors.New("signature mismatch")
	}
	return s.claims, nil
}

func newStub() *stubVerifier {
	return &stubVerifier{
		valid:  "good",
		claims: token.Claims{UserID: "u1", TenantID: "t1", Email: "a@b.com", Role: token.RoleHR},
	}
}

func claimsEcho(t *testing.T, got *token.Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		*got = claims
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestTokenFromRequest(t *testing.T) {
	cases := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"none", "", "", ""},
		{"bearer", "", "Bearer abc", "abc"},
		{"bearer any case", "", "bEaReR   abc ", "abc"},
		{"other scheme", "", "Basic abc", ""},
		{"cookie wins", "fromcookie", "Bearer fromheader", "fromcookie"},
		{"empty cookie falls back", "", "Bearer fromheader", "fromheader"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, TokenFromRequest(req))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	t.Run("admits a valid bearer token", func(t *testing.T) {
		stub := newStub()
		var got token.Claims
		handler := NewAuthMiddleware(stub).RequireAuth(claimsEcho(t, &got))

		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "t1", got.TenantID)
		assert.Equal(t, 1, stub.calls)
	})

	t.Run("missing token", func(t *testing.T) {
		stub := newStub()
		handler := NewAuthMiddleware(stub).RequireAuth(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/employees", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Zero(t, stub.calls)
	})

	t.Run("rejected token", func(t *testing.T) {
		handler := NewAuthMiddleware(newStub()).RequireAuth(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"Invalid token"}}`, rec.Body.String())
	})
}

func TestRequireRolesAndTenant(t *testing.T) {
	auth := NewAuthMiddleware(newStub())

	serve := func(claims token.Claims, h http.Handler) int {
		req := httptest.NewRequest(http.MethodGet, "/api/audit-logs", nil)
		req = req.WithContext(WithClaims(req.Context(), claims))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	adminOnly := auth.RequireRoles(token.RoleAdmin, token.RoleSuperAdmin)(okHandler())
	assert.Equal(t, http.StatusOK, serve(token.Claims{Role: token.RoleAdmin}, adminOnly))
	assert.Equal(t, http.StatusForbidden, serve(token.Claims{Role: token.RoleEmployee}, adminOnly))

	tenantOnly := auth.RequireTenant(okHandler())
	assert.Equal(t, http.StatusOK, serve(token.Claims{TenantID: "t1"}, tenantOnly))
	assert.Equal(t, http.StatusBadRequest, serve(token.Claims{Role: token.RoleSuperAdmin}, tenantOnly))

	rec := httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/audit-logs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
