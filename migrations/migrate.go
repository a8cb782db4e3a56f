// Package migrations embeds the SQL schema of the sync server and of the
// device agent and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var serverMigrations embed.FS

//go:embed client/*.sql
var clientMigrations embed.FS

// Migrate brings a PostgreSQL database up to the latest server schema.
func Migrate(db *sql.DB) error {
	return up(db, serverMigrations, "postgres", ".")
}

// MigrateClient brings the device SQLite database up to the latest schema.
func MigrateClient(db *sql.DB) error {
	return up(db, clientMigrations, "sqlite3", "client")
}

func up(db *sql.DB, fsys embed.FS, dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
