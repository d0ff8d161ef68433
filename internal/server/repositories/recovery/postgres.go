// Package recovery persists recovery records keyed by email.
package recovery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cybervault/internal/common"
	"github.com/dmitrijs2005/cybervault/internal/dbx"
	"github.com/dmitrijs2005/cybervault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert replaces question, answer and created_at on conflict: a second
// registration is a brand new record, nothing of the old one survives.
func (r *PostgresRepository) Upsert(ctx context.Context, email, questionCiphertext, answerCiphertext string) error {
	query :=
		`INSERT INTO recovery_records (email, security_question, security_answer, created_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (email) DO UPDATE
		 SET security_question = EXCLUDED.security_question,
		     security_answer = EXCLUDED.security_answer,
		     created_at = EXCLUDED.created_at
		 `

	_, err := r.db.ExecContext(ctx, query, email, questionCiphertext, answerCiphertext)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, email string) (*models.RecoveryRecord, error) {
	query :=
		`SELECT email, security_question, security_answer, created_at FROM recovery_records
		 WHERE email = $1
		 `

	rec := &models.RecoveryRecord{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&rec.Email, &rec.SecurityQuestionCiphertext, &rec.SecurityAnswerCiphertext, &rec.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}
