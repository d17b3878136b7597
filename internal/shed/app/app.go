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

	httpapi "github.com/codingbarn/barnyard/internal/shed/http"
	"github.com/codingbarn/barnyard/internal/shed/service"
	"github.com/codingbarn/barnyard/pkg/jwtx"
	"github.com/codingbarn/barnyard/pkg/slogx"
)

const BuildVersion = "v0.1.0"

// Application encapsulates the shed resource server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	musicService     *service.MusicService
	equipmentService *service.EquipmentService

	server *http.Server
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "shed-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	verifier, err := jwtx.NewHS256([]byte(cfg.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("invalid signing key: %w", err)
	}

	app.musicService = service.NewMusicService()
	app.equipmentService = service.NewEquipmentService()

	router := httpapi.NewRouter(verifier, BuildVersion, app.logger)
	router.MusicService = app.musicService
	router.EquipmentService = app.equipmentService
	router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return app, nil
}

func (app *Application) Run() error {
	app.logger.Info("shed service starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down shed service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.logger.Info("shed service stopped")
	return nil
}
