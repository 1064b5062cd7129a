// Package server initializes and runs the authentication server.
// It wires configuration, storage, the session orchestrator and the HTTP
// endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/httpapi"
	"github.com/dmitrijs2005/authgate/internal/server/sessions"
	"github.com/dmitrijs2005/authgate/internal/server/shared/db"
)

// sweepInterval is how often expired refresh-token rows are reclaimed.
// Lookups already filter on expiry, so the cadence is not security relevant.
const sweepInterval = time.Hour

type App struct {
	config   *config.Config
	logger   logging.Logger
	manager  *db.PostgresManager
	sessions *sessions.Service
	router   http.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(c.IsProduction())

	manager, err := db.NewPostgresManager(ctx, c.DatabaseDSN, c.DBMaxOpenConns, c.DBMaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewTokenManager(
		[]byte(c.AccessTokenSecret),
		[]byte(c.RefreshTokenSecret),
		c.AccessTokenTTL,
		c.RefreshTokenTTL,
	)

	sessionService := sessions.NewService(
		manager.Conn(), manager, auth.NewPasswordHasher(), tokens, c.QueryTimeout,
	)

	handler := httpapi.NewHandler(sessionService, logger, c.RefreshTokenTTL, c.IsProduction())
	health := httpapi.NewHealthHandler(manager, logger)
	router := httpapi.NewRouter(handler, health, tokens, logger, c.CORSOrigin, c.IsProduction())

	return &App{
		config:   c,
		logger:   logger,
		manager:  manager,
		sessions: sessionService,
		router:   router,
	}, nil
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

// startSweeper periodically deletes expired refresh-token rows until ctx is
// cancelled.
func (app *App) startSweeper(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.sessions.SweepExpired(ctx)
			if err != nil {
				app.logger.Error(ctx, "expired token sweep failed", "error", err.Error())
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired refresh tokens removed", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server",
		"addr", app.config.Addr,
		"env", app.config.Env,
	)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go app.startSweeper(ctx)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err.Error())
	}

	if err := app.manager.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err.Error())
	}

	return nil
}
