// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cybervault/internal/dbx"
	"github.com/dmitrijs2005/cybervault/internal/server/migrations"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/recovery"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/vault"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Recovery returns a recovery.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Recovery(db dbx.DBTX) recovery.Repository {
	return recovery.NewPostgresRepository(db)
}

// Vault returns a vault.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Vault(db dbx.DBTX) vault.Repository {
	return vault.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations. Afterwards both tables
// exist and the vault singleton row is present.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dbx.DriverName); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
