package kv

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"aurex-storefront/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

type kvRow struct {
	Key       string `db:"key"`
	Value     []byte `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

// SQLiteStore keeps every key as a row of one table. WAL mode lets the
// background cart writer and request handlers use the file concurrently.
type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create sqlite dir %s", dir)
		}
	}
	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	if path == ":memory:" {
		// each pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create kv_store table")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	var row kvRow
	err := s.db.GetContext(ctx, &row, `SELECT key, value, updated_at FROM kv_store WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		err = domain.ErrNotFound
	} else if err != nil {
		err = unavailable(err, "select", key)
	}
	observe("sqlite", "get", key, start, err)
	if err != nil {
		return nil, err
	}
	return row.Value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := upsertSQLite(ctx, s.db, key, value)
	observe("sqlite", "set", key, start, err)
	return err
}

type sqliteExecer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

func upsertSQLite(ctx context.Context, ex sqliteExecer, key string, value []byte) error {
	const q = `
INSERT INTO kv_store (key, value, updated_at) VALUES (:key, :value, :updated_at)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := ex.NamedExecContext(ctx, q, kvRow{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	return unavailable(err, "upsert", key)
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key)
	return unavailable(err, "delete", key)
}

func (s *SQLiteStore) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return unavailable(err, "begin", key)
	}
	defer tx.Rollback()

	var current []byte
	err = tx.GetContext(ctx, &current, `SELECT value FROM kv_store WHERE key = ?`, key)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return unavailable(err, "select", key)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if err := upsertSQLite(ctx, tx, key, next); err != nil {
		return err
	}
	return unavailable(tx.Commit(), "commit", key)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
