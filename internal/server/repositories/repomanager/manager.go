package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cybervault/internal/dbx"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/recovery"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/vault"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Recovery(db dbx.DBTX) recovery.Repository
	Vault(db dbx.DBTX) vault.Repository
}
