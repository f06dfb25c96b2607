// Package token mints and verifies the compact HS256 session tokens shared by
// the gatekeeper, the API handlers and the browser client.
//
// Wire format:
//
//	base64url({"alg":"HS256","typ":"JWT"}) "." base64url(payload) "." base64url(HMAC-SHA256)
//
// All segments are unpadded URL-safe base64. The signature covers the ASCII
// bytes of the first two encoded segments joined by a dot.
package token

import (
	"bytes"
	"crypto/hmac"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// LoginTTL is the lifetime of tokens issued by a password login.
	LoginTTL = 7 * 24 * time.Hour
	// DefaultTTL is the lifetime of tokens issued by any other path.
	DefaultTTL = 24 * time.Hour
)

var (
	ErrMissingSecret = errors.New("token: signing secret is required")
	ErrMalformed     = errors.New("token: malformed")
	ErrBadSignature  = errors.New("token: signature mismatch")
	ErrExpired       = errors.New("token: expired")
)

// Service signs and verifies session tokens with a single shared secret.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for iat, exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Service keyed by secret. An empty secret is a configuration
// error: the service refuses to exist rather than mint unsigned tokens.
func New(secret string, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	s := &Service{
		secret: []byte(secret),
		now:    time.Now,
		parser: jwt.NewParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Mint stamps iat and exp onto a copy of claims and returns the signed token.
func (s *Service) Mint(claims Claims, ttl time.Duration) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrMissingSecret
	}

	issued := s.now()
	claims.IssuedAt = jwt.NewNumericDate(issued)
	claims.ExpiresAt = jwt.NewNumericDate(issued.Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature of raw before looking at its payload, then
// decodes the claims and rejects them once exp has been reached.
//
// The returned error wraps ErrMalformed, ErrBadSignature or ErrExpired. Those
// kinds are meant for logs; callers answer every one of them the same way.
func (s *Service) Verify(raw string) (Claims, error) {
	if s == nil || len(s.secret) == 0 {
		return Claims{}, ErrMissingSecret
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Claims{}, fmt.Errorf("%w: %w: want 3 segments, got %d", ErrMalformed, jwt.ErrTokenMalformed, len(parts))
	}

	expected, err := s.sign(parts[0] + "." + parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrBadSignature, err)
	}
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return Claims{}, fmt.Errorf("%w: %w", ErrBadSignature, jwt.ErrTokenSignatureInvalid)
	}

	payload, err := s.parser.DecodeSegment(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w: decode payload: %w", ErrMalformed, jwt.ErrTokenMalformed, err)
	}

	if trimmed := bytes.TrimSpace(payload); len(trimmed) == 0 || trimmed[0] != '{' {
		return Claims{}, fmt.Errorf("%w: %w: payload is not a JSON object", ErrMalformed, jwt.ErrTokenMalformed)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %w: parse payload: %w", ErrMalformed, jwt.ErrTokenMalformed, err)
	}

	if err := jwt.NewValidator(jwt.WithTimeFunc(s.now)).Validate(claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%w: %w", ErrExpired, err)
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return claims, nil
}

func (s *Service) sign(signingString string) (string, error) {
	sig, err := jwt.SigningMethodHS256.Sign(signingString, s.secret)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(sig), nil
}
