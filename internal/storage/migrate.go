package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

type migrateDirection string

const (
	directionUp   migrateDirection = ".up.sql"
	directionDown migrateDirection = ".down.sql"
)

// MigrateUp brings the schema to the latest version. The scripts are
// idempotent, so running it on every open is safe.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, directionUp)
}

// MigrateDown tears the schema back down, newest script first.
func MigrateDown(db *sql.DB) error {
	return runMigrations(db, directionDown)
}

func runMigrations(db *sql.DB, direction migrateDirection) error {
	names, err := fs.Glob(schemaFS, "migrations/*"+string(direction))
	if err != nil {
		return fmt.Errorf("storage: list migrations: %w", err)
	}
	sort.Strings(names)
	if direction == directionDown {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	for _, name := range names {
		script, readErr := schemaFS.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("storage: read %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(script)); execErr != nil {
			return fmt.Errorf("storage: apply %s: %w", name, execErr)
		}
	}
	return nil
}
