// Package vault wires the application together: it opens the database
// behind the configured DSN, runs migrations, builds the services and hands
// the api surface to the CLI. Shutdown is signal-driven.
package vault

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault/api"
	"github.com/dmitrijs2005/passvault/internal/vault/cli"
	"github.com/dmitrijs2005/passvault/internal/vault/config"
	"github.com/dmitrijs2005/passvault/internal/vault/envelope"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/repomanager"
	"github.com/dmitrijs2005/passvault/internal/vault/services/accounts"
	"github.com/dmitrijs2005/passvault/internal/vault/services/categories"
	"github.com/dmitrijs2005/passvault/internal/vault/services/maintenance"
	"github.com/dmitrijs2005/passvault/internal/vault/services/records"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	cli    *cli.App
}

// openDatabase selects the backend by DSN shape: postgres:// URLs go to
// pgx, anything else is treated as a SQLite file path.
func openDatabase(dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("db init error: %w", err)
		}
		return db, repomanager.NewPostgresRepositoryManager(), nil
	}

	// plain file paths get the foreign_keys pragma so account deletion
	// cascades; DSNs that already carry options are passed through as-is
	if !strings.HasPrefix(dsn, "file:") && !strings.Contains(dsn, "?") {
		dsn = "file:" + dsn + "?_pragma=foreign_keys(1)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}
	return db, repomanager.NewSQLiteRepositoryManager(), nil
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, repos, err := openDatabase(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := repos.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var uploader maintenance.Uploader
	if cfg.S3BaseEndpoint != "" {
		uploader = maintenance.NewS3Uploader(cfg, logger)
	}

	envSvc := envelope.NewService(db, repos, logger, cfg.BcryptCost)
	accSvc := accounts.NewService(db, repos, envSvc, logger, cfg.BcryptCost)
	catSvc := categories.NewService(db, repos, logger)
	recSvc := records.NewService(db, repos, envSvc, logger)
	mntSvc := maintenance.NewService(db, repos, cfg, logger, uploader)

	surface := api.New(accSvc, envSvc, catSvc, recSvc, mntSvc, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		cli:    cli.NewApp(surface),
	}, nil
}

// Run starts the interactive loop and blocks until it finishes or a
// termination signal arrives.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancel()
	}()

	a.cli.Root(ctx)

	if err := a.db.Close(); err != nil {
		a.logger.Error(ctx, "failed to close database", "error", err)
	}
}
