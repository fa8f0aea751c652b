// Package repository provides data access layer implementations for the
// bookingswap marketplace.
package repository

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql shared by *sql.DB, *sql.Tx and the
// db.DB wrapper. Repositories are constructed over a Querier so services can
// run them inside a transaction when an operation spans multiple writes.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
