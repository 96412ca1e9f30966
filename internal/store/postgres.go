package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps profile state in a single prep_state table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the prep_state table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS prep_state (
			profile_id UUID NOT NULL,
			key        TEXT NOT NULL,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (profile_id, key)
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Get retrieves the blob stored under profileID/key.
func (s *PostgresStore) Get(ctx context.Context, profileID uuid.UUID, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM prep_state WHERE profile_id = $1 AND key = $2`,
		profileID, key,
	).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get state %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the blob under profileID/key, last writer wins.
func (s *PostgresStore) Set(ctx context.Context, profileID uuid.UUID, key string, value []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO prep_state (profile_id, key, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (profile_id, key) DO UPDATE SET value = $3, updated_at = NOW()`,
		profileID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob under profileID/key. Deleting a missing key is
// not an error.
func (s *PostgresStore) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM prep_state WHERE profile_id = $1 AND key = $2`,
		profileID, key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}
