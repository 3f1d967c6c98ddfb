// Package server initializes and runs the journal application server.
// It opens the database, applies pending migrations, wires the services,
// handles graceful shutdown, and starts the HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mindwell/journal/internal/logging"
	"github.com/mindwell/journal/internal/server/config"
	"github.com/mindwell/journal/internal/server/httpapi"
	"github.com/mindwell/journal/internal/server/repositories/repomanager"
	"github.com/mindwell/journal/internal/server/services"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	repos              repomanager.RepositoryManager
	userService        *services.UserService
	entryService       *services.EntryService
	mindfulnessService *services.MindfulnessService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(rm.Users(), cfg)
	es := services.NewEntryService(rm.Entries())
	ms := services.NewMindfulnessService(rm.Mindfulness())

	return &App{
		config:             cfg,
		logger:             logger,
		repos:              rm,
		userService:        us,
		entryService:       es,
		mindfulnessService: ms,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger,
		app.userService, app.entryService, app.mindfulnessService, app.config.SecretKey)

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

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
