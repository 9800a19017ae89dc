package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/gridmirror/internal/config"
	"github.com/vk/gridmirror/internal/ctxlog"
	"github.com/vk/gridmirror/internal/megaverse"
	"github.com/vk/gridmirror/internal/reconcile"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	runCfg *config.Model
	client *megaverse.Client
	driver *reconcile.Driver
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. A failure to load
// the run configuration is a fatal startup error and panics; the entrypoint
// recovers it into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, clientOpts ...megaverse.Option) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	runCfg, err := loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Run configuration loaded.", "base_url", runCfg.BaseURL)

	client := megaverse.NewClient(runCfg, clientOpts...)
	driver := reconcile.NewDriver(client, runCfg.Submit)

	return &App{
		outW:   outW,
		logger: logger,
		runCfg: runCfg,
		client: client,
		driver: driver,
	}
}

// RunConfig returns the loaded run model. This is primarily for testing.
func (a *App) RunConfig() *config.Model {
	return a.runCfg
}
