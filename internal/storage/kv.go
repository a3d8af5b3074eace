// Package storage is the persistence collaborator: a string key-value slot
// per cart, backed by SQLite, plus the codec for the stored item list.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// KV is the key-value contract the cart persists through. Get reports
// absence through ok, not an error; consumers treat absent and malformed
// values the same way (empty cart).
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// SQLite stores cart payloads in the carts table.
type SQLite struct {
	DB *sql.DB
}

// Get returns the stored value for a key.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM carts WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cart %q: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites the stored value for a key, creating the slot if needed.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO carts (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing cart %q: %w", key, err)
	}
	return nil
}
