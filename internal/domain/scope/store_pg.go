package scope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const scopeRowID = "monthly"

// PostgresStore keeps the tag set as a single JSONB row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load(ctx context.Context) (TagSet, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT tags FROM monthly_scope WHERE id = $1`, scopeRowID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return TagSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load monthly scope: %w", err)
	}

	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("decode monthly scope: %w", err)
	}
	return FromKeys(keys), nil
}

func (s *PostgresStore) Save(ctx context.Context, tags TagSet) error {
	raw, err := json.Marshal(tags.Keys())
	if err != nil {
		return fmt.Errorf("encode monthly scope: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO monthly_scope (id, tags)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET tags = EXCLUDED.tags`,
		scopeRowID, raw)
	if err != nil {
		return fmt.Errorf("save monthly scope: %w", err)
	}
	return nil
}
