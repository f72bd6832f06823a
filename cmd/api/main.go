package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fable-engine/fable/internal/config"
	"github.com/fable-engine/fable/internal/handlers"
	"github.com/fable-engine/fable/internal/logger"
	"github.com/fable-engine/fable/internal/middleware"
	"github.com/fable-engine/fable/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logr := logger.Setup(cfg)
	logr.Info("Starting Fable API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"games_dir", cfg.GamesDir)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.GamesDir, logr)

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		logr.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, logr))
	mux.Handle("/v1/games", handlers.NewGamesHandler(store, logr))

	sessionsHandler := handlers.NewSessionsHandler(store, logr)
	mux.Handle("/v1/sessions", sessionsHandler)
	mux.Handle("/v1/sessions/", sessionsHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logger(mux, logr),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		logr.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logr.Info("Server exited")
}
