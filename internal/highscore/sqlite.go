// internal/highscore/sqlite.go
//
// SQLite-backed Store over the kv table (see internal/database migrations).
// Raise runs in a transaction; the pool holds a single connection, so
// concurrent raises are serialized.

package highscore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStore keeps the high score in the kv table.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore expects db to be migrated already.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Read(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, Key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	return v, nil
}

func (s *SQLStore) Write(ctx context.Context, score int) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at)
        VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
        ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		Key, score,
	)
	if err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

func (s *SQLStore) Raise(ctx context.Context, score int) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("raise high score: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var prev int
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, Key).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("raise high score: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at)
        VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
        ON CONFLICT(key) DO UPDATE SET value=max(value, excluded.value), updated_at=excluded.updated_at`,
		Key, score,
	); err != nil {
		return 0, fmt.Errorf("raise high score: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("raise high score: %w", err)
	}
	return prev, nil
}
