// Package server initializes and runs the SafeRide backend: it opens the
// database, applies migrations, builds the service layer and serves the REST
// endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/saferide/saferide/internal/logging"
	"github.com/saferide/saferide/internal/server/config"
	"github.com/saferide/saferide/internal/server/httpapi"
	"github.com/saferide/saferide/internal/server/repositories/repomanager"
	"github.com/saferide/saferide/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
	closeDB func() error
}

func NewApp(cfg *config.Config) (*App, error) {
	handler := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(handler)

	db, err := repomanager.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	manager := repomanager.NewPostgresRepositoryManager()
	if err := manager.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	srv := httpapi.NewServer(cfg, logger, httpapi.Services{
		Auth:          services.NewAuthService(db, manager, cfg),
		Users:         services.NewUserService(db, manager),
		Companies:     services.NewCompanyService(db, manager),
		Children:      services.NewChildService(db, manager),
		Relationships: services.NewRelationshipService(db, manager),
		Rides:         services.NewRideService(db, manager),
	})

	return &App{config: cfg, logger: logger, server: srv, closeDB: db.Close}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	if err := app.server.Shutdown(context.Background()); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	if err := app.closeDB(); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	wg.Wait()
}
