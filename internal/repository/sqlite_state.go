package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/procmap/internal/db"
)

// SQLiteStateRepo implements StateRepo using a SQLite database.
type SQLiteStateRepo struct {
	db db.DBTX
}

// NewSQLiteStateRepo creates a new SQLiteStateRepo.
func NewSQLiteStateRepo(conn db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn}
}

func (r *SQLiteStateRepo) Load(ctx context.Context, key string) (*StateSlot, error) {
	query := `SELECT key, value, revision, updated_at FROM state_slots WHERE key = ?`
	row := r.db.QueryRowContext(ctx, query, key)

	var (
		slot      StateSlot
		value     string
		updatedAt string
	)
	if err := row.Scan(&slot.Key, &value, &slot.Revision, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("state slot %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning state slot: %w", err)
	}
	slot.Value = []byte(value)
	slot.UpdatedAt = parseTimeOrZero(updatedAt)
	return &slot, nil
}

func (r *SQLiteStateRepo) Save(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO state_slots (key, value, revision, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			revision = state_slots.revision + 1,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, string(value), nowUTC()); err != nil {
		return fmt.Errorf("saving state slot: %w", err)
	}
	return nil
}

func (r *SQLiteStateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM state_slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting state slot: %w", err)
	}
	return nil
}
