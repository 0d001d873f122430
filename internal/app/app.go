package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/lotworks/opls/internal/http"
	"github.com/lotworks/opls/internal/service"
	"github.com/lotworks/opls/internal/store"
	"github.com/lotworks/opls/internal/store/drivers/sqlite"
	"github.com/lotworks/opls/pkg/cryptox"
	"github.com/lotworks/opls/pkg/jwtx"
	"github.com/lotworks/opls/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all of its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer jwtx.Signer

	clientService       *service.ClientService
	accountService      *service.AccountService
	sessionService      *service.SessionService
	grantService        *service.GrantService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "opls-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Signing keys are ephemeral; every restart invalidates outstanding
	// access tokens. Refresh tokens survive in the database.
	signer, err := jwtx.NewEphemeralSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing key: %w", err)
	}
	app.signer = signer

	app.initServices()

	if err := app.bootstrapService.Ensure(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to bootstrap database: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.clientService = &service.ClientService{Store: app.db}
	app.accountService = &service.AccountService{Store: app.db}
	app.sessionService = &service.SessionService{
		Store:      app.db,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.grantService = &service.GrantService{
		Store:      app.db,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:  app.db,
		Config: app.cfg.Bootstrap,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		jwtx.NewVerifierFromSigner(app.signer, app.cfg.Issuer),
		app.cfg.Issuer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.ClientService = app.clientService
	router.AccountService = app.accountService
	router.SessionService = app.sessionService
	router.GrantService = app.grantService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
