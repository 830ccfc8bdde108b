package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/company-admin/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError("op", nil, nil))
	assert.ErrorIs(t, mapError("op", pgx.ErrNoRows, nil), domain.ErrNotFound)

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	assert.ErrorIs(t, mapError("insert user", unique, domain.ErrEmailAlreadyExists), domain.ErrEmailAlreadyExists)

	check := &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "companies_employees_check"}
	assert.ErrorIs(t, mapError("insert company", check, nil), domain.ErrInvalidInput)

	down := &pgconn.PgError{Code: pgerrcode.AdminShutdown}
	assert.ErrorIs(t, mapError("list", down, nil), domain.ErrStoreUnavailable)

	other := errors.New("boom")
	err := mapError("list", other, nil)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
}
