package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"frontier/internal/app"
	"frontier/internal/platform/config"
	"frontier/internal/platform/httpserver"
	"frontier/internal/platform/logger"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("store close failed", "error", err)
		}
	}()

	opts := []app.Option{
		app.WithMetrics(app.NewMetrics()),
		app.WithAuditBuffer(256),
	}
	if backend.Redis != nil {
		opts = append(opts, app.WithRedis(backend.Redis.Client))
	}
	engine := app.New(cfg, backend.Records, log, opts...)
	defer func() {
		if err := engine.Close(); err != nil {
			log.Error("audit flush failed", "error", err)
		}
	}()

	if cfg.Seed {
		if err := engine.Seed(ctx); err != nil {
			return err
		}
		log.Info("seed data written")
	}

	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		if err := engine.Run(ctx); err != nil {
			log.Error("auth watcher stopped", "error", err)
		}
	}()

	srv := httpserver.New(cfg.Server, engine.Router)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting frontier", "addr", cfg.Server.Addr, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			stop()
			<-watcherDone
			return err
		}
	}
	stop()
	<-watcherDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
