// Package server initializes and runs the authentication server.
// It selects the user store, builds the token issuer and auth service,
// serves the HTTP API, and shuts down gracefully on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	closeLogger func() error
	db          *sql.DB
	authService *services.AuthService
	issuer      *auth.Issuer
}

// NewApp wires the application from cfg. With an empty DatabaseDSN users
// live in memory; otherwise PostgreSQL is opened and migrated.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger, closeLogger, err := logging.New(logging.Options{Backend: cfg.LogBackend, LogFile: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "DatabaseDSN is empty, using in-memory user store")
		rm = repomanager.NewMemoryRepositoryManager()
	} else {
		db, err = repomanager.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			_ = closeLogger()
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		if db != nil {
			_ = db.Close()
		}
		_ = closeLogger()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	issuer := auth.NewIssuer([]byte(cfg.SecretKey))
	hasher := cryptox.NewBcryptHasher(cfg.BcryptCost)
	as := services.NewAuthService(db, rm, hasher, issuer, cfg)

	return &App{
		config:      cfg,
		logger:      logger,
		closeLogger: closeLogger,
		db:          db,
		authService: as,
		issuer:      issuer,
	}, nil
}

// watchSignals cancels the app on SIGINT/SIGTERM/SIGQUIT and returns once
// ctx is done.
func (app *App) watchSignals(ctx context.Context, cancelFunc context.CancelFunc) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigs)

	select {
	case sig := <-sigs:
		app.logger.Info(ctx, "signal received", "signal", sig.String())
		cancelFunc()
	case <-ctx.Done():
	}
	return nil
}

func (app *App) newHTTPServer() *httpapi.Server {
	h := httpapi.NewHandler(app.authService, app.logger, app.config.CookieSecure, app.authService.RefreshTokenValidity())
	router := httpapi.NewRouter(h, app.issuer, app.logger, app.config.FrontendURL)
	return httpapi.NewServer(app.config.EndpointAddrHTTP, router, app.logger)
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database and flushes the logger.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.watchSignals(gctx, cancelFunc)
	})
	g.Go(func() error {
		return app.newHTTPServer().Run(gctx)
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}

	app.close()
	return err
}

func (app *App) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "error", err)
		}
	}
	app.logger.Info(context.Background(), "App stopped")
	_ = app.closeLogger()
}
