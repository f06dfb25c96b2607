package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderTenantID = "X-Tenant-Id"
)

var (
	publicPaths    = []string{"/", "/auth/login", "/auth/register", "/favicon.ico"}
	publicPrefixes = []string{"/_next/", "/api/", "/assets/"}
)

// Gatekeeper guards page routes. Requests without a valid session are
// redirected to the login page; admitted requests carry the caller identity
// in X-User-Id and X-Tenant-Id.
type Gatekeeper struct {
	verifier  tokenVerifier
	loginPath string
}

func NewGatekeeper(verifier tokenVerifier, loginPath string) *Gatekeeper {
	if loginPath == "" {
		loginPath = "/auth/login"
	}
	return &Gatekeeper{verifier: verifier, loginPath: loginPath}
}

func (g *Gatekeeper) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		raw := TokenFromRequest(r)
		if raw == "" {
			http.Redirect(w, r, g.loginPath, http.StatusTemporaryRedirect)
			return
		}

		claims, err := g.verifier.Verify(raw)
		if err != nil {
			slog.Debug("page token rejected", "path", r.URL.Path, "reason", err.Error())
			http.Redirect(w, r, g.loginPath, http.StatusTemporaryRedirect)
			return
		}

		forwarded := r.WithContext(WithClaims(r.Context(), claims))
		forwarded.Header = r.Header.Clone()
		forwarded.Header.Del(HeaderUserID)
		forwarded.Header.Del(HeaderTenantID)
		forwarded.Header.Set(HeaderUserID, claims.UserID)
		if claims.HasTenant() {
			forwarded.Header.Set(HeaderTenantID, claims.TenantID)
		}

		next.ServeHTTP(w, forwarded)
	})
}

// IsPublicPath reports whether path is served without a session.
func IsPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
