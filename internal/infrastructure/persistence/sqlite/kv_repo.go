package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/newtab/internal/domain/repository"
	"github.com/bnema/newtab/internal/logging"
)

const (
	getValueQuery = `SELECT value FROM kv WHERE key = ?`
	setValueQuery = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	deleteValueQuery = `DELETE FROM kv WHERE key = ?`
	listKeysQuery    = `SELECT key FROM kv ORDER BY key`
)

type kvRepo struct {
	db *sql.DB
}

// NewKeyValueRepository creates a new SQLite-backed key-value repository.
func NewKeyValueRepository(db *sql.DB) repository.KeyValueRepository {
	return &kvRepo{db: db}
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Msg("getting value")

	var value string
	err := r.db.QueryRowContext(ctx, getValueQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, true, nil
}

func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("key", key).Int("bytes", len(value)).Msg("setting value")

	if _, err := r.db.ExecContext(ctx, setValueQuery, key, value); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteValueQuery, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listKeysQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
