package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	req := require.New(t)

	req.True(IsNotFound(pgx.ErrNoRows))

	// Classification survives fmt.Errorf wrapping at the store layer
	req.True(IsNotFound(fmt.Errorf("get user: %w", pgx.ErrNoRows)))

	req.False(IsNotFound(errors.New("connection refused")))
	req.False(IsNotFound(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	req := require.New(t)

	req.True(IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	req.True(IsUniqueViolation(fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"})))

	// Other constraint classes and unrelated errors do not match
	req.False(IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	req.False(IsUniqueViolation(pgx.ErrNoRows))
	req.False(IsUniqueViolation(nil))
}
