// Package migration applies the embedded schema migrations at startup.
// Migrations are plain SQL files named NNNN_description.up.sql, applied
// in lexical order; each applied version is recorded in
// schema_migrations so restarts are idempotent.
package migration

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"
)

const schemaDir = "migrations"

//go:embed migrations/*.up.sql
var schemaFS embed.FS

// RunMigrations applies every pending embedded migration in order. Each
// migration runs in its own transaction together with its version row.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migration database handle is required")
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	names, err := fs.Glob(schemaFS, schemaDir+"/*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		version := name[len(schemaDir)+1:]
		if applied[version] {
			continue
		}
		if err := apply(db, name, version); err != nil {
			return fmt.Errorf("apply %s: %w", version, err)
		}
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func apply(db *sql.DB, name, version string) error {
	script, err := schemaFS.ReadFile(name)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(script)); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
		version, time.Now().UTC(),
	); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
