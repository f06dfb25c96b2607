package handler

import (
	"net/http"

	"hr-payroll/internal/event"
	"hr-payroll/internal/middleware"
	"hr-payroll/internal/token"
)

func actorFromRequest(r *http.Request) event.Actor {
	actor := event.Actor{IP: middleware.ClientIP(r)}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return actor
	}

	actor.TenantID = claims.TenantID
	actor.UserID = claims.UserID

	return actor
}

// tenantID is the caller's tenant. Routes using it sit behind RequireTenant.
func tenantID(r *http.Request) string {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	return claims.TenantID
}

func callerClaims(r *http.Request) (token.Claims, bool) {
	return middleware.ClaimsFromContext(r.Context())
}
