package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cybervault/internal/common"
	"github.com/dmitrijs2005/cybervault/internal/dbx"
	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/dmitrijs2005/cybervault/internal/server/archive"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/repomanager"
)

// VaultSyncService stores the single client-encrypted vault blob. The blob
// is opaque: it is never parsed, validated or decrypted here.
type VaultSyncService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	archiver    archive.Archiver
	logger      logging.Logger
}

func NewVaultSyncService(db *sql.DB, m repomanager.RepositoryManager, a archive.Archiver, l logging.Logger) *VaultSyncService {
	if a == nil {
		a = archive.Nop{}
	}
	return &VaultSyncService{
		db:          db,
		repomanager: m,
		archiver:    a,
		logger:      l.With("module", "vault"),
	}
}

// GetBlob returns the stored blob, or "" if none was ever set.
func (s *VaultSyncService) GetBlob(ctx context.Context) (string, error) {
	v, err := s.repomanager.Vault(s.db).Get(ctx)
	if err != nil {
		s.logger.Error(ctx, "loading vault blob failed", "error", err)
		return "", fmt.Errorf("%w: %w", common.ErrorStorage, err)
	}
	return v.Blob, nil
}

// SetBlob replaces the stored blob. Concurrent writers are last-writer-wins.
// When archiving is enabled the overwritten blob is copied to object
// storage after commit; an archive failure does not fail the call.
func (s *VaultSyncService) SetBlob(ctx context.Context, blob string) error {
	var previous string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Vault(tx)

		var err error
		previous, err = repo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		return repo.Put(ctx, blob)
	})
	if err != nil {
		s.logger.Error(ctx, "storing vault blob failed", "error", err)
		return fmt.Errorf("%w: %w", common.ErrorStorage, err)
	}

	s.logger.Info(ctx, "vault blob updated", "bytes", len(blob))

	if previous != "" && previous != blob {
		if key, err := s.archiver.Archive(ctx, previous); err != nil {
			s.logger.Warn(ctx, "archiving previous vault blob failed", "error", err)
		} else if key != "" {
			s.logger.Info(ctx, "previous vault blob archived", "key", key)
		}
	}

	return nil
}
