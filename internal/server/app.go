// Package server wires configuration, storage, services and the HTTP and
// gRPC front ends into one runnable application.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/ecohack/internal/logging"
	"github.com/dmitrijs2005/ecohack/internal/server/catalog"
	"github.com/dmitrijs2005/ecohack/internal/server/config"
	"github.com/dmitrijs2005/ecohack/internal/server/httpapi"
	"github.com/dmitrijs2005/ecohack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ecohack/internal/server/services"
	"github.com/dmitrijs2005/ecohack/internal/server/suggest"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/ecohack/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	repos    repomanager.RepositoryManager
	sessions *services.SessionService
	handler  *httpapi.Handler
}

// NewApp logs JSON to stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return NewAppWithLogger(ctx, c, logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil))))
}

func NewAppWithLogger(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rm, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	us, err := services.NewUserService(rm.Users(), c)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}
	ss := services.NewSessionService(rm.Sessions(), c)
	es := services.NewEconomyService(rm.Users(), catalog.Default())
	gen := suggest.NewGenerator(suggest.NewClient(c), logger)

	if c.LLMAPIKey == "" {
		logger.Warn(ctx, "LLM API key not set, quiz and DIY endpoints will fail")
	}

	return &App{
		config:   c,
		logger:   logger,
		repos:    rm,
		sessions: ss,
		handler:  httpapi.NewHandler(us, ss, es, gen, logger, c.CookieSecure),
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

// Run serves until ctx is cancelled or a termination signal arrives, then
// stops both servers and closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreBackend)

	app.initSignalHandler(cancelFunc)

	if n, err := app.sessions.Sweep(ctx); err != nil {
		app.logger.Warn(ctx, "expired session sweep failed", "error", err)
	} else if n > 0 {
		app.logger.Info(ctx, "expired sessions removed", "count", n)
	}

	g, gctx := errgroup.WithContext(ctx)

	router := httpapi.NewRouter(app.handler, app.logger, app.config.StaticDir)
	hs := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger)
	g.Go(func() error { return hs.Run(gctx) })

	if app.config.EndpointAddrGRPC != "" {
		grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger)
		g.Go(func() error { return grpcServer.Run(gctx) })
	}

	err := g.Wait()

	if cerr := app.repos.Close(); cerr != nil {
		app.logger.Error(ctx, "closing store failed", "error", cerr)
	}
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return err
}
