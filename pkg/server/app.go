package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"UsageCast/pkg/config"
	xhttp "UsageCast/pkg/http"
	applogger "UsageCast/pkg/logger"
)

// App runs the HTTP API until it is interrupted.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
}

func New(cfg *config.Config, log *applogger.Logger, httpServer *xhttp.Server) *App {
	return &App{cfg: cfg, log: log, httpServer: httpServer}
}

// Server exposes the HTTP server, mainly for tests.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the HTTP server and blocks until ctx is done or SIGINT/SIGTERM arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("usagecast api started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("backend", a.cfg.Model.Backend),
		applogger.Int("port", a.cfg.Server.Port),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.log.Info("shutdown complete")
	return nil
}
