package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Role is the coarse authorization tag carried in a session token.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleHR         Role = "HR"
	RoleEmployee   Role = "EMPLOYEE"
)

// Valid reports whether r is one of the known role tags.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// Claims is the payload of a session token. Field order matches the wire
// payload: caller identity first, then iat and exp.
//
// TenantID is empty for super-administrators, who act across tenants.
type Claims struct {
	UserID    string           `json:"userId"`
	TenantID  string           `json:"tenantId,omitempty"`
	Email     string           `json:"email"`
	Role      Role             `json:"role"`
	IssuedAt  *jwt.NumericDate `json:"iat,omitempty"`
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
}

// HasTenant reports whether the claims are scoped to a single tenant.
func (c Claims) HasTenant() bool {
	return c.TenantID != ""
}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return c.IssuedAt, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c Claims) GetIssuer() (string, error)                   { return "", nil }
func (c Claims) GetSubject() (string, error)                  { return c.UserID, nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

var _ jwt.Claims = Claims{}
