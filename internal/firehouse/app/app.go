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

	httpapi "github.com/codingbarn/barnyard/internal/firehouse/http"
	"github.com/codingbarn/barnyard/internal/firehouse/service"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

const BuildVersion = "v0.1.0"

// Application encapsulates the firehouse: the poller (old way) and the
// webhook receiver (new way) run side by side for comparison.
type Application struct {
	cfg    Config
	logger *slog.Logger

	poller   *service.Poller
	receiver *service.Receiver

	server *http.Server
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "firehouse-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.poller = service.NewPoller(cfg.BarnURL, cfg.BarnEndpoint, cfg.PollingInterval)
	app.receiver = service.NewReceiver()

	router := httpapi.NewRouter(BuildVersion, app.logger)
	router.Poller = app.poller
	router.Receiver = app.receiver
	router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return app, nil
}

func (app *Application) Run() error {
	app.logger.Info("firehouse starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"barn_url", app.cfg.BarnURL,
		"polling_interval", app.cfg.PollingInterval,
	)

	app.poller.Start(slogx.WithContext(context.Background(), app.logger))

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

func (app *Application) Shutdown() error {
	app.logger.Info("shutting down firehouse...")

	app.poller.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.logger.Info("firehouse stopped")
	return nil
}
