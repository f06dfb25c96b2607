package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"hr-payroll/internal/event"
	"hr-payroll/pkg/validator"
)

var (
	ctx     = context.Background()
	actor   = event.Actor{TenantID: "t1", UserID: "u1", IP: "10.0.0.1"}
	fixedAt = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
)

// fixDeps pins the clock and id generator of d for deterministic tests.
func fixDeps(d *deps, ids ...string) {
	d.now = func() time.Time { return fixedAt }
	next := 0
	d.newID = func() string {
		if next < len(ids) {
			id := ids[next]
			next++
			return id
		}
		return "id-extra"
	}
}

func testValidator() *validator.Validator {
	return validator.New()
}

// recorder subscribes to bus and returns a func that drains what was
// published so far.
func recorder(t *testing.T, bus event.Bus) func() []event.Event {
	t.Helper()
	ch, unsubscribe := bus.Subscribe()
	t.Cleanup(unsubscribe)

	return func() []event.Event {
		var out []event.Event
		for {
			select {
			case e := <-ch:
				out = append(out, e)
			default:
				return out
			}
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}

// legacyDigest returns the hex PBKDF2 digest stored by the previous password
// scheme.
func legacyDigest(password, salt string) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(password), []byte(salt), 1000, 64, sha256.New))
}
