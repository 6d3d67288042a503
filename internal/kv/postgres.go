package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"abctrack/internal/domain"
)

// PostgresStore implements Store on a single records table:
// (key TEXT PRIMARY KEY, value TEXT, updated_at TIMESTAMPTZ).
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// CreateConnectionPool creates a pgx connection pool and verifies the
// connection. Pool sizing matches a small single-service deployment.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// NewPostgresStore wraps an existing pool. The table name carries the
// environment prefix (dev_, test_, prod_) so environments share a database.
func NewPostgresStore(pool *pgxpool.Pool, tablePrefix string) *PostgresStore {
	return &PostgresStore{
		pool:  pool,
		table: tablePrefix + "records",
	}
}

// EnsureSchema creates the records table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, s.table)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.table)

	var value string
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &domain.StorageError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, s.table)

	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.table)

	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return &domain.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

func (s *PostgresStore) GetAllKeys(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT key FROM %s ORDER BY key`, s.table)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, &domain.StorageError{Op: "keys", Key: "*", Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &domain.StorageError{Op: "keys", Key: "*", Err: err}
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "keys", Key: "*", Err: err}
	}
	return keys, nil
}

func (s *PostgresStore) MultiGet(ctx context.Context, keys []string) ([]KeyValue, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT key, value FROM %s WHERE key = ANY($1)`, s.table)

	rows, err := s.pool.Query(ctx, query, keys)
	if err != nil {
		return nil, &domain.StorageError{Op: "multiget", Key: keys[0], Err: err}
	}
	defer rows.Close()

	found := make(map[string]string, len(keys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, &domain.StorageError{Op: "multiget", Key: keys[0], Err: err}
		}
		found[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "multiget", Key: keys[0], Err: err}
	}

	// Preserve request order, skipping missing keys.
	result := make([]KeyValue, 0, len(found))
	for _, k := range keys {
		if v, ok := found[k]; ok {
			result = append(result, KeyValue{Key: k, Value: v})
		}
	}
	return result, nil
}
