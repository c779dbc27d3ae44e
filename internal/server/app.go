// Package server initializes and runs the application: it loads the
// database, applies migrations, builds the media store and the user service,
// and serves the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Jung-GunSong/friender-backend/internal/cryptox"
	"github.com/Jung-GunSong/friender-backend/internal/logging"
	"github.com/Jung-GunSong/friender-backend/internal/server/api"
	"github.com/Jung-GunSong/friender-backend/internal/server/config"
	"github.com/Jung-GunSong/friender-backend/internal/server/media"
	"github.com/Jung-GunSong/friender-backend/internal/server/repositories/repomanager"
	"github.com/Jung-GunSong/friender-backend/internal/server/services"
)

// openDB is a seam for tests.
var openDB = repomanager.OpenPostgres

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := media.NewS3Store(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("media store init error: %w", err)
	}

	us, err := services.NewUserService(db, rm, cryptox.NewPasswordHasher(c.BcryptWorkFactor), store, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("user service init error: %w", err)
	}

	return &App{config: c, logger: logger, db: db, userService: us}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := api.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService,
		app.config.MaxUploadBytes, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

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

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
