package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"restaurant-ordering/internal/domain"

	"github.com/jmoiron/sqlx"
)

var errNotFound = domain.ErrNotFound

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cart_snapshots (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

type sqliteStore struct {
	db  *sqlx.DB
	ttl time.Duration
}

// NewSQLite stores snapshots in a local sqlite file. Entries older than ttl
// read as missing; ttl <= 0 keeps them forever.
func NewSQLite(ctx context.Context, db *sqlx.DB, ttl time.Duration) (SnapshotStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, err
	}
	return &sqliteStore{db: db, ttl: ttl}, nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row struct {
		Value     []byte    `db:"value"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	err := s.db.GetContext(ctx, &row, `SELECT value, updated_at FROM cart_snapshots WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	if s.ttl > 0 && time.Since(row.UpdatedAt) > s.ttl {
		return nil, errNotFound
	}
	return row.Value, nil
}

func (s *sqliteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO cart_snapshots (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	return err
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_snapshots WHERE key = ?`, key)
	return err
}
