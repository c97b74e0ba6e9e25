package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapUserError(t *testing.T) {
	assert.ErrorIs(t, mapUserError(pgx.ErrNoRows, "get"), ErrNotFound)
	assert.ErrorIs(t, mapUserError(&pgconn.PgError{Code: "23505"}, "create"), ErrDuplicateEmail)

	other := errors.New("connection reset")
	err := mapUserError(other, "failed to create user")
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "failed to create user")
	assert.NotErrorIs(t, err, ErrNotFound)
}
