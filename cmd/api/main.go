package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"juan-note/internal/config"
	"juan-note/internal/events"
	"juan-note/internal/http"
	"juan-note/internal/logging"
	"juan-note/internal/service"
	"juan-note/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer func() {
		_ = logCloser.Close()
	}()
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat, "file", cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.NewWithOptions(cfg.DBPath, storage.Options{CacheSizeKB: cfg.DBCacheSizeKB})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath, "schema_version", storage.LatestVersion())

	// Create repository instances
	noteRepo := storage.NewNoteRepo(db)
	stateRepo := storage.NewStateRepo(db)
	bulkRepo := storage.NewBulkRepo(db)

	hub := events.NewHub(events.DefaultBuffer)

	deps := &http.Deps{
		Notes:          service.NewNoteService(noteRepo, hub),
		States:         service.NewStateService(stateRepo, hub),
		Bulk:           service.NewBulkService(bulkRepo, hub),
		Store:          db,
		Events:         hub,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	router := http.NewRouter(deps)

	listener, err := listen(cfg.APIHost, cfg.APIPort, cfg.APIPortMax)
	if err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}

	server := &nethttp.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", listener.Addr().String())
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}

// listen binds the first free port in [port, maxPort].
func listen(host string, port, maxPort int) (net.Listener, error) {
	var lastErr error
	for p := port; p <= maxPort; p++ {
		addr := net.JoinHostPort(host, strconv.Itoa(p))
		l, err := net.Listen("tcp", addr)
		if err == nil {
			if p != port {
				slog.Warn("Preferred port busy, using fallback", "preferred", port, "port", p)
			}
			return l, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no free port in %d-%d: %w", port, maxPort, lastErr)
}
