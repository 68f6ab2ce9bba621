// Package store implements Postgres-backed persistence for users and posts.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PageSize is the number of posts returned per list page.
const PageSize = 5

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// DBTX is the subset of pgxpool.Pool the stores need. Satisfied by
// *pgxpool.Pool and by pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TotalPages returns the number of PageSize pages needed for count rows.
// An empty result set still has one (empty) page.
func TotalPages(count int64) int {
	if count <= 0 {
		return 1
	}
	pages := int((count + PageSize - 1) / PageSize)
	return pages
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
