package database

import (
	"database/sql"
	"fmt"
)

// LocalStateStore persists client-owned state as opaque string values
// under fixed keys, mirroring browser local storage semantics.
type LocalStateStore struct {
	db *DB
}

var _ LocalStateRepository = (*LocalStateStore)(nil)

func NewLocalStateStore(db *DB) *LocalStateStore {
	return &LocalStateStore{db: db}
}

func (r *LocalStateStore) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`
		SELECT value FROM local_state WHERE key = ?
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get local state %q: %w", key, err)
	}

	return value, true, nil
}

func (r *LocalStateStore) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO local_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)

	if err != nil {
		return fmt.Errorf("failed to set local state %q: %w", key, err)
	}

	return nil
}
