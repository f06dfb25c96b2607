package handler

import (
	"net/http"
	"time"

	"hr-payroll/internal/middleware"
	"hr-payroll/internal/model"
	"hr-payroll/internal/service"
	"hr-payroll/pkg/apierror"
)

// CookieOptions shapes the session cookie set at login.
type CookieOptions struct {
	Secure   bool
	HTTPOnly bool
	MaxAge   time.Duration
}

type AuthHandler struct {
	service *service.AuthService
	cookie  CookieOptions
}

func NewAuthHandler(service *service.AuthService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	result, err := h.service.Register(r.Context(), payload, middleware.ClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, result, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	result, err := h.service.Login(r.Context(), payload, middleware.ClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge / time.Second),
		HttpOnly: h.cookie.HTTPOnly,
		Secure:   h.cookie.Secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeSuccess(w, http.StatusOK, result, nil)
}

// Verify checks a Bearer token. The session cookie is not consulted.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	raw := middleware.BearerToken(r)
	if raw == "" {
		writeError(w, apierror.Unauthorized("No token provided"))
		return
	}

	result, err := h.service.Verify(raw)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: h.cookie.HTTPOnly,
		Secure:   h.cookie.Secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(r)
	if !ok {
		writeError(w, apierror.Unauthorized("Unauthorized"))
		return
	}

	result, err := h.service.Me(r.Context(), claims)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}
