package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cybervault/internal/client/cache"
	"github.com/dmitrijs2005/cybervault/internal/client/cli"
	"github.com/dmitrijs2005/cybervault/internal/client/client"
	"github.com/dmitrijs2005/cybervault/internal/client/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	c, err := client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.CallTimeout)
	if err != nil {
		return err
	}
	defer c.Close()

	var repo cache.Repository
	if cfg.CachePath != "" {
		var db *sql.DB
		db, err = cache.Open(ctx, cfg.CachePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cache disabled:", err)
		} else {
			defer db.Close()
			repo = cache.NewSQLiteRepository(db)
		}
	}

	return cli.NewApp(c, repo, os.Stdin, os.Stdout).Run(ctx, args)
}
