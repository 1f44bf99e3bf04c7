// Package server wires configuration, storage, the user service and the HTTP
// API together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/eventboard/internal/logging"
	"github.com/dmitrijs2005/eventboard/internal/server/auth"
	"github.com/dmitrijs2005/eventboard/internal/server/config"
	"github.com/dmitrijs2005/eventboard/internal/server/httpapi"
	"github.com/dmitrijs2005/eventboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/eventboard/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	tokens      *auth.TokenCodec
}

// NewApp validates c and builds the application. With a DatabaseDSN it
// connects to PostgreSQL and applies migrations; otherwise users live in
// memory for the lifetime of the process.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if c.DatabaseDSN != "" {
		var err error
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		logger.Info(ctx, "Using PostgreSQL user directory")
	} else {
		rm = repomanager.NewInMemoryRepositoryManager()
		logger.Warn(ctx, "No database DSN configured, users are kept in memory")
	}

	tokens := auth.NewTokenCodec([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	us := services.NewUserService(db, rm, auth.NewPasswordHasher(c.BcryptCost), tokens, logger)

	return &App{config: c, logger: logger, db: db, userService: us, tokens: tokens}, nil
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

func (app *App) httpServer() *httpapi.HTTPServer {
	opts := []httpapi.Option{httpapi.WithTimeouts(app.config.RequestTimeout, app.config.ShutdownTimeout)}
	if app.db != nil {
		opts = append(opts, httpapi.WithDB(app.db))
	}
	return httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.tokens, opts...)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is canceled, a signal is received or the HTTP server
// fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
