package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/thom899g/autonomous-adaptive-integration-nexus--aain/internal/config"
	"github.com/thom899g/autonomous-adaptive-integration-nexus--aain/internal/httpapi"
	"github.com/thom899g/autonomous-adaptive-integration-nexus--aain/internal/logging"
)

func main() {
	// Initialize logger (console + append-only file)
	logger, err := logging.New()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load startup configuration and hand it to the single owning manager.
	// The manager is passed to collaborators explicitly; there is no
	// process-wide instance.
	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	manager, err := config.NewManagerWith(cfg, logger)
	if err != nil {
		logger.Fatal("Invalid startup configuration", zap.Error(err))
	}

	// Hot reload is opt-in: point AAIN_CONFIG_DIR at a directory holding
	// aain.yaml or aain.json.
	if dir := os.Getenv("AAIN_CONFIG_DIR"); dir != "" {
		watcher, err := config.NewWatcher(dir, manager, logger)
		if err != nil {
			logger.Fatal("Failed to create config watcher", zap.Error(err))
		}
		if err := watcher.Start(ctx); err != nil {
			logger.Fatal("Failed to start config watcher", zap.Error(err))
		}
		defer watcher.Stop()
	}

	// Shared admin mux: settings surface plus metrics.
	mux := http.NewServeMux()
	httpapi.NewSettingsHandler(manager, logger).RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	adminPort := getEnvOrDefaultInt("ADMIN_PORT", 8081)
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(adminPort),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("Admin HTTP server listening", zap.Int("port", adminPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Admin HTTP server failed", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Admin HTTP server shutdown failed", zap.Error(err))
	}
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
