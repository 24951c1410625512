/*
Package store is the PostgreSQL system of record for users and messages.

It implements the chat.MessageStore contract plus the account queries used by
the authentication and sidebar handlers, on top of a pgx connection pool.
*/
package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"dmchat/internal/pkg/logx"
)

// Store executes all database queries over a shared pgx pool.
type Store struct {
	pool *pgxpool.Pool

	// structured logger with Store context.
	logger zerolog.Logger
}

// New constructs a Store over the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:   pool,
		logger: logx.Component("Store"),
	}
}
