// Package database provides the shared Postgres connection and migration helpers.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blogcraft/blog-backend/internal/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// ErrDatabaseURLNotSet indicates an empty connection string was supplied.
var ErrDatabaseURLNotSet = errors.New("database URL is not set")

// NewPool creates a pgx connection pool and verifies it with a ping.
// The caller owns the pool and must Close it.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, ErrDatabaseURLNotSet
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// RunMigrations applies the embedded goose migrations. goose works against
// database/sql, so a short-lived stdlib connection is opened alongside the pool.
func RunMigrations(ctx context.Context, databaseURL string) error {
	if databaseURL == "" {
		return ErrDatabaseURLNotSet
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
