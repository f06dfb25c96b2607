// Package passhash hashes and checks user passwords.
//
// New hashes are bcrypt. Verification also accepts the legacy PBKDF2 format
// "<salt>:<hex digest>", where the digest is PBKDF2-HMAC-SHA256 over the
// password with the salt string's bytes, 1000 iterations and a 64 byte key.
package passhash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultCost = 12

	legacyIterations = 1000
	legacyKeyLength  = 64
)

var ErrEmptyPassword = errors.New("password is required")

type Hasher struct {
	cost int
}

func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches stored. Unknown formats never match.
func (h *Hasher) Verify(password string, stored string) bool {
	switch {
	case strings.HasPrefix(stored, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	case strings.Contains(stored, ":"):
		salt, digest, _ := strings.Cut(stored, ":")
		want, err := hex.DecodeString(digest)
		if err != nil || len(want) != legacyKeyLength {
			return false
		}
		got := pbkdf2.Key([]byte(password), []byte(salt), legacyIterations, legacyKeyLength, sha256.New)
		return subtle.ConstantTimeCompare(got, want) == 1
	default:
		return false
	}
}
