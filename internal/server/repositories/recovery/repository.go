package recovery

import (
	"context"

	"github.com/dmitrijs2005/cybervault/internal/server/models"
)

// Repository stores one recovery record per email. Values are stored as
// handed over; the repository never encrypts or decrypts.
type Repository interface {
	// Upsert inserts the record for email or fully replaces an existing one.
	Upsert(ctx context.Context, email, questionCiphertext, answerCiphertext string) error
	// Get returns the record for email or common.ErrorNotFound.
	Get(ctx context.Context, email string) (*models.RecoveryRecord, error)
}
