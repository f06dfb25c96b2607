package passhash

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

func TestHashAndVerifyBcrypt(t *testing.T) {
	h := New(bcrypt.MinCost)

	hash, err := h.Hash("secret-pass")
	require.NoError(t, err)
	assert.True(t, h.Verify("secret-pass", hash))
	assert.False(t, h.Verify("wrong", hash))
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	_, err := New(bcrypt.MinCost).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestVerifyLegacyPBKDF2(t *testing.T) {
	salt := "0f1e2d3c4b5a69788796a5b4c3d2e1f0"
	digest := pbkdf2.Key([]byte("password"), []byte(salt), 1000, 64, sha256.New)
	stored := salt + ":" + hex.EncodeToString(digest)

	h := New(bcrypt.MinCost)
	assert.True(t, h.Verify("password", stored))
	assert.False(t, h.Verify("Password", stored))
}

func TestVerifyUnknownFormats(t *testing.T) {
	h := New(bcrypt.MinCost)

	assert.False(t, h.Verify("password", "password"))
	assert.False(t, h.Verify("password", ""))
	assert.False(t, h.Verify("password", "salt:not-hex"))
	assert.False(t, h.Verify("password", "salt:abcd"))
}

func TestNewFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, DefaultCost, New(0).cost)
	assert.Equal(t, DefaultCost, New(99).cost)
	assert.Equal(t, 10, New(10).cost)
}
