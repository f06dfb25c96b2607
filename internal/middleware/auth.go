package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"hr-payroll/internal/token"
)

// SessionCookie is the cookie that carries the session token.
const SessionCookie = "token"

type tokenVerifier interface {
	Verify(raw string) (token.Claims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth admits requests that carry a valid session token in the
// cookie or the Authorization header.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := TokenFromRequest(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
			return
		}

		claims, err := m.verifier.Verify(raw)
		if err != nil {
			slog.Debug("token rejected", "path", r.URL.Path, "reason", err.Error())
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func (m *AuthMiddleware) RequireRoles(allowed ...token.Role) func(http.Handler) http.Handler {
	roleSet := map[token.Role]struct{}{}
	for _, role := range allowed {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
				return
			}

			if _, exists := roleSet[claims.Role]; !exists {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTenant rejects callers whose token is not scoped to a tenant.
func (m *AuthMiddleware) RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
			return
		}
		if !claims.HasTenant() {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Tenant ID required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenFromRequest returns the session token of r. A non-empty cookie wins
// over the Authorization header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return BearerToken(r)
}

// BearerToken returns the token of an "Authorization: Bearer <t>" header, or
// "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// WithClaims stores claims in ctx and tags the request log line with the
// caller.
func WithClaims(ctx context.Context, claims token.Claims) context.Context {
	if info, ok := ctx.Value(requestInfoContextKey).(*requestInfo); ok {
		info.setCaller(claims.TenantID, claims.UserID)
	}
	return context.WithValue(ctx, authClaimsContextKey, claims)
}

func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(token.Claims)
	return claims, ok
}
