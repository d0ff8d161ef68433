// Package vault persists the singleton vault blob row (id = 1). The blob
// column is BYTEA and values travel as []byte, so any byte sequence,
// including NUL and invalid UTF-8, is stored verbatim.
package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cybervault/internal/dbx"
	"github.com/dmitrijs2005/cybervault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.VaultBlob, error) {
	query :=
		`SELECT blob, updated_at FROM vault_blob
		 WHERE id = 1
		 `

	var blob []byte
	v := &models.VaultBlob{}
	err := r.db.QueryRowContext(ctx, query).Scan(&blob, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.VaultBlob{}, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	v.Blob = string(blob)

	return v, nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context) (string, error) {
	query :=
		`SELECT blob FROM vault_blob
		 WHERE id = 1
		 FOR UPDATE
		 `

	var blob []byte
	err := r.db.QueryRowContext(ctx, query).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return string(blob), nil
}

func (r *PostgresRepository) Put(ctx context.Context, blob string) error {
	query :=
		`INSERT INTO vault_blob (id, blob, updated_at)
		 VALUES (1, $1, now())
		 ON CONFLICT (id) DO UPDATE
		 SET blob = EXCLUDED.blob,
		     updated_at = EXCLUDED.updated_at
		 `

	if _, err := r.db.ExecContext(ctx, query, []byte(blob)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
