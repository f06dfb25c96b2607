package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"hr-payroll/internal/model"
)

func TestWhereBuilderNumbersArguments(t *testing.T) {
	w := &whereBuilder{}
	assert.Equal(t, "", w.clause())

	w.add("x.tenant_id = $%d", "t1")
	w.add("x.status = $%d", "pending")
	w.add("x.start_date >= $%d", "2024-01-01")

	assert.Equal(t, "WHERE x.tenant_id = $1 AND x.status = $2 AND x.start_date >= $3", w.clause())
	assert.Equal(t, []any{"t1", "pending", "2024-01-01"}, w.args)
}

func TestWrapWriteMapsUniqueViolation(t *testing.T) {
	assert.NoError(t, wrapWrite("create employee", nil))

	dup := wrapWrite("create employee", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, dup, model.ErrDuplicate)
	assert.Contains(t, dup.Error(), "create employee")

	other := wrapWrite("create employee", errors.New("connection reset"))
	assert.NotErrorIs(t, other, model.ErrDuplicate)
}

func TestNullIfEmpty(t *testing.T) {
	blank := "  "
	value := "x"
	assert.Nil(t, nullIfEmpty(nil))
	assert.Nil(t, nullIfEmpty(&blank))
	assert.Equal(t, &value, nullIfEmpty(&value))
}
