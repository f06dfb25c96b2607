package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hr-payroll/internal/event"
	"hr-payroll/internal/model"
	"hr-payroll/internal/token"
	"hr-payroll/pkg/apierror"
)

type TokenIssuer interface {
	Mint(claims token.Claims, ttl time.Duration) (string, error)
	Verify(raw string) (token.Claims, error)
}

type AuthService struct {
	deps
	tokens     TokenIssuer
	users      UserStore
	tenants    TenantStore
	hasher     PasswordHasher
	loginTTL   time.Duration
	defaultTTL time.Duration
}

func NewAuthService(tokens TokenIssuer, users UserStore, tenants TenantStore, hasher PasswordHasher,
	validator StructValidator, bus event.Bus, loginTTL time.Duration, defaultTTL time.Duration) *AuthService {
	if loginTTL <= 0 {
		loginTTL = token.LoginTTL
	}
	if defaultTTL <= 0 {
		defaultTTL = token.DefaultTTL
	}
	return &AuthService{
		deps:       newDeps(validator, bus),
		tokens:     tokens,
		users:      users,
		tenants:    tenants,
		hasher:     hasher,
		loginTTL:   loginTTL,
		defaultTTL: defaultTTL,
	}
}

// Register creates a tenant with its first ADMIN user and returns a session
// token for that admin.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest, ip string) (model.RegisterResult, error) {
	if err := s.validate(req); err != nil {
		return model.RegisterResult{}, err
	}

	companyEmail := strings.ToLower(strings.TrimSpace(req.CompanyEmail))
	adminEmail := strings.ToLower(strings.TrimSpace(req.AdminEmail))

	exists, err := s.tenants.ExistsByEmail(ctx, companyEmail)
	if err != nil {
		return model.RegisterResult{}, err
	}
	if exists {
		return model.RegisterResult{}, apierror.BadRequest("Company email already registered", "companyEmail")
	}

	exists, err = s.users.ExistsByEmail(ctx, adminEmail)
	if err != nil {
		return model.RegisterResult{}, err
	}
	if exists {
		return model.RegisterResult{}, apierror.BadRequest("Admin email already registered", "adminEmail")
	}

	hash, err := s.hasher.Hash(req.AdminPassword)
	if err != nil {
		return model.RegisterResult{}, fmt.Errorf("hash admin password: %w", err)
	}

	now := s.now()
	tenant := model.Tenant{
		ID:           s.newID(),
		Name:         strings.TrimSpace(req.CompanyName),
		Email:        companyEmail,
		Phone:        optional(req.CompanyPhone),
		Address:      optional(req.CompanyAddress),
		Subscription: optional(req.Plan),
		Status:       model.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	admin := model.User{
		ID:           s.newID(),
		TenantID:     &tenant.ID,
		Name:         strings.TrimSpace(req.AdminName),
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         token.RoleAdmin,
		Status:       model.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.tenants.CreateWithAdmin(ctx, tenant, admin); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return model.RegisterResult{}, apierror.BadRequest("Company or admin email already registered", "")
		}
		return model.RegisterResult{}, err
	}

	signed, err := s.tokens.Mint(admin.Claims(), s.defaultTTL)
	if err != nil {
		return model.RegisterResult{}, fmt.Errorf("mint registration token: %w", err)
	}

	s.publish(event.TypeTenantRegistered, event.Actor{TenantID: tenant.ID, UserID: admin.ID, IP: ip},
		"tenant", tenant.ID, "Registered company "+tenant.Name)

	return model.RegisterResult{
		Message:  "Tenant and admin account created successfully",
		TenantID: tenant.ID,
		UserID:   admin.ID,
		Token:    signed,
	}, nil
}

// Login checks credentials and issues a LoginTTL session token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest, ip string) (model.LoginResult, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return model.LoginResult{}, apierror.BadRequest("Email and password are required", "")
	}
	if err := s.validate(req); err != nil {
		return model.LoginResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.LoginResult{}, apierror.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return model.LoginResult{}, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return model.LoginResult{}, apierror.Unauthorized("Invalid email or password")
	}
	if user.Status != model.StatusActive {
		return model.LoginResult{}, apierror.Unauthorized("Account is not active")
	}

	var tenant *model.Tenant
	if user.TenantID != nil {
		t, err := s.tenants.FindByID(ctx, *user.TenantID)
		if err != nil && !errors.Is(err, model.ErrTenantNotFound) {
			return model.LoginResult{}, err
		}
		if err == nil {
			tenant = &t
		}
	}

	signed, err := s.tokens.Mint(user.Claims(), s.loginTTL)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("mint login token: %w", err)
	}

	actor := event.Actor{UserID: user.ID, IP: ip}
	if user.TenantID != nil {
		actor.TenantID = *user.TenantID
	}
	s.publish(event.TypeUserLoggedIn, actor, "user", user.ID, "Logged in as "+user.Email)

	return model.LoginResult{
		Message: "Login successful",
		User:    user,
		Tenant:  tenant,
		Token:   signed,
	}, nil
}

// Verify reports the identity carried by raw. Every rejection reads the same
// to the caller; the reason is only logged.
func (s *AuthService) Verify(raw string) (model.VerifyResult, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		slog.Debug("token rejected", "reason", err.Error())
		return model.VerifyResult{}, apierror.Unauthorized("Invalid token")
	}

	return model.VerifyResult{
		Valid: true,
		User: model.VerifiedUser{
			ID:       claims.UserID,
			TenantID: claims.TenantID,
			Email:    claims.Email,
			Role:     claims.Role,
		},
	}, nil
}

// Me re-reads the caller's user record and tenant.
func (s *AuthService) Me(ctx context.Context, claims token.Claims) (model.LoginResult, error) {
	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.LoginResult{}, apierror.Unauthorized("User no longer exists")
	}
	if err != nil {
		return model.LoginResult{}, err
	}

	result := model.LoginResult{User: user}
	if user.TenantID != nil {
		t, err := s.tenants.FindByID(ctx, *user.TenantID)
		if err == nil {
			result.Tenant = &t
		} else if !errors.Is(err, model.ErrTenantNotFound) {
			return model.LoginResult{}, err
		}
	}
	return result, nil
}

// EnsureSuperAdmin creates a tenant-less SUPER_ADMIN with email when no user
// holds that email yet. It is a no-op when email or password is empty.
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, email string, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash super admin password: %w", err)
	}

	now := s.now()
	err = s.users.Create(ctx, model.User{
		ID:           s.newID(),
		Name:         "Super Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         token.RoleSuperAdmin,
		Status:       model.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil && !errors.Is(err, model.ErrDuplicate) {
		return err
	}

	slog.Info("super admin ensured", "email", email)
	return nil
}
