package kv

import (
	"context"
	"time"

	"aurex-storefront/config"
	"aurex-storefront/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS storefront_kv (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse database URL")
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create connection pool")
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "unable to ping database")
	}

	return pool, nil
}

// PostgresStore keeps values as jsonb rows. Every stored value is a JSON
// document, so the column type doubles as validation.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	pool, err := NewPgxPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "create storefront_kv table")
	}
	return &PostgresStore{db: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	var value []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM storefront_kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		err = domain.ErrNotFound
	} else if err != nil {
		err = unavailable(err, "select", key)
	}
	observe("postgres", "get", key, start, err)
	if err != nil {
		return nil, err
	}
	return value, nil
}

const postgresUpsert = `
INSERT INTO storefront_kv (key, value, updated_at) VALUES ($1, $2::jsonb, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	_, err := s.db.Exec(ctx, postgresUpsert, key, string(value))
	err = unavailable(err, "upsert", key)
	observe("postgres", "set", key, start, err)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM storefront_kv WHERE key = $1`, key)
	return unavailable(err, "delete", key)
}

// Update locks the row for the duration of fn.
func (s *PostgresStore) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return unavailable(err, "begin", key)
	}
	defer tx.Rollback(ctx)

	var current []byte
	err = tx.QueryRow(ctx, `SELECT value FROM storefront_kv WHERE key = $1 FOR UPDATE`, key).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return unavailable(err, "select", key)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, postgresUpsert, key, string(next)); err != nil {
		return unavailable(err, "upsert", key)
	}
	return unavailable(tx.Commit(ctx), "commit", key)
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
