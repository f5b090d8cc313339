package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps settings documents in the settings table, one
// JSONB row per key.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM settings WHERE key = $1`, key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get settings %s: %w", key, err)
	}
	return raw, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, raw []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (key, document)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET document = EXCLUDED.document`,
		key, raw)
	if err != nil {
		return fmt.Errorf("set settings %s: %w", key, err)
	}
	return nil
}
