package model

import (
	"time"

	"hr-payroll/internal/token"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Tenant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	Subscription *string   `json:"subscription"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// User is a login principal. TenantID is nil for super-administrators.
type User struct {
	ID           string     `json:"id"`
	TenantID     *string    `json:"tenantId"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         token.Role `json:"role"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Claims returns the identity claims a session token carries for u.
func (u User) Claims() token.Claims {
	claims := token.Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}
	if u.TenantID != nil {
		claims.TenantID = *u.TenantID
	}
	return claims
}

type LoginResult struct {
	Message string  `json:"message"`
	User    User    `json:"user"`
	Tenant  *Tenant `json:"tenant"`
	Token   string  `json:"token"`
}

type RegisterResult struct {
	Message  string `json:"message"`
	TenantID string `json:"tenantId"`
	UserID   string `json:"userId"`
	Token    string `json:"token"`
}

type VerifyResult struct {
	Valid bool         `json:"valid"`
	User  VerifiedUser `json:"user"`
}

type VerifiedUser struct {
	ID       string     `json:"id"`
	TenantID string     `json:"tenantId,omitempty"`
	Email    string     `json:"email"`
	Role     token.Role `json:"role"`
}
