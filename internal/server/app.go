// Package server wires the CyberVault server together: it loads the master
// key, opens storage, builds the services and runs the gRPC endpoint until
// a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/cybervault/internal/cryptox"
	"github.com/dmitrijs2005/cybervault/internal/dbx"
	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/dmitrijs2005/cybervault/internal/server/archive"
	"github.com/dmitrijs2005/cybervault/internal/server/config"
	"github.com/dmitrijs2005/cybervault/internal/server/keystore"
	"github.com/dmitrijs2005/cybervault/internal/server/mailer"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cybervault/internal/server/services"

	gs "github.com/dmitrijs2005/cybervault/internal/server/grpc"
)

var (
	openDB         = dbx.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *gs.GRPCServer
}

// NewApp builds the application. The master key is loaded before anything
// else: a key file that cannot be used stops startup, so the server never
// serves traffic it could not decrypt.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	ks := keystore.New(c.KeyFile, logger)
	key, err := ks.GetOrCreateKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("master key error: %w", err)
	}
	logger.Info(ctx, "Master key ready", "key_file", ks.Path())

	engine, err := cryptox.NewEngine(key)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	arch, err := newArchiver(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive init error: %w", err)
	}

	rs := services.NewRecoveryService(db, rm, engine, newMailer(c, logger), c.PublicHost, logger)
	vs := services.NewVaultSyncService(db, rm, arch, logger)
	ss := services.NewStatusService(c.EndpointAddrGRPC)

	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, rs, vs, ss)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func newMailer(c *config.Config, l logging.Logger) mailer.Mailer {
	if !c.MailEnabled {
		return mailer.NewLogMailer(l)
	}
	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		Sender:   c.SMTPSender,
		Timeout:  c.SMTPTimeout,
	}, l)
}

func newArchiver(ctx context.Context, c *config.Config, l logging.Logger) (archive.Archiver, error) {
	if !c.ArchiveEnabled {
		return archive.Nop{}, nil
	}
	return archive.NewS3Archiver(ctx, archive.Config{
		Region:       c.S3Region,
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
	}, l)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server error", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a shutdown signal arrives, then
// closes the database pool.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "address", app.config.EndpointAddrGRPC, "mail_enabled", app.config.MailEnabled)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
