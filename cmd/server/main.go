package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/dgallion1/lessongest/internal/api"
	"github.com/dgallion1/lessongest/internal/config"
	"github.com/dgallion1/lessongest/internal/pipeline"
	"github.com/dgallion1/lessongest/internal/snapshot"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		slog.Error("invalid .env file", "error", err)
		os.Exit(1)
	}
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Error ignored: the runtime default applies if the cgroup quota is unreadable.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug("maxprocs", "msg", format, "args", args)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Error("snapshot store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, store, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting lessongest",
		"port", cfg.Port,
		"workers", cfg.WorkerCount,
		"snapshot_backend", cfg.SnapshotBackend)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (snapshot.Store, func(), error) {
	switch cfg.SnapshotBackend {
	case config.BackendPathstore:
		ps := snapshot.NewPathstoreStore(cfg.PathstoreURL, cfg.PathstoreAPIKey)
		return snapshot.NewCachedStore(ps, cfg.SnapshotCacheTTL), ps.Close, nil
	default:
		fs, err := snapshot.NewFileStore(cfg.SnapshotDir)
		if err != nil {
			return nil, nil, err
		}
		return snapshot.NewCachedStore(fs, cfg.SnapshotCacheTTL), func() {}, nil
	}
}
