// Package store opens the client's Local Store database and applies its
// embedded schema migrations.
//
// The store is a durable, versioned sqlite database holding two
// independently-keyed tables (student_info and notices). Version upgrades
// only ever create missing objects; there is no data-migration logic
// beyond initial creation.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"noticeease/internal/client/migrations"

	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the Local Store at dsn and brings
// its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
