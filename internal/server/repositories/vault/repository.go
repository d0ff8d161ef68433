package vault

import (
	"context"

	"github.com/dmitrijs2005/cybervault/internal/server/models"
)

// Repository stores the single shared vault blob.
type Repository interface {
	// Get returns the stored blob; an empty blob if it was never set.
	Get(ctx context.Context) (*models.VaultBlob, error)
	// GetForUpdate returns the current blob and locks the row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context) (string, error)
	// Put replaces the blob, recreating the singleton row if it is missing.
	Put(ctx context.Context, blob string) error
}
