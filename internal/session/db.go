// Package session persists the authenticated operator principal across
// restarts. Two slots with different lifetimes are supported: a durable
// one backed by a file database and an ephemeral one backed by an
// in-memory database that dies with the process.
package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/marketpro/internal/session/migrations"
)

// MemoryDSN opens a database that lives only as long as the process,
// giving the ephemeral slot its sessionStorage-like lifetime.
const MemoryDSN = ":memory:"

// OpenDB opens and migrates a SQLite database for session slots.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db %s: %w", dsn, err)
	}
	// An in-memory database exists per connection, so the pool must
	// stay on a single one or writes vanish between statements.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session db %s: %w", dsn, err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
