package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS state_slots (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		revision   INTEGER NOT NULL DEFAULT 1 CHECK(revision > 0),
		updated_at TEXT NOT NULL
	)`,
}
