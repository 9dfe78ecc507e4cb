// Package db opens the local wallet database and applies schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/sealvault/sealvault-core/internal/db/migrations"
)

// Open opens (creating if needed) the SQLite database at dsn and brings the
// schema up to date.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := RunMigrations(ctx, database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return database, nil
}

// RunMigrations applies all pending embedded migrations.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, database, ".")
}
