// Package main implements the Study Buddy API server: AI-generated study
// material (notes, flashcards, exam questions) with session history and a
// daily generation ceiling. The quiz game engines under internal/game are
// consumed in-process and carry no network surface of their own.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rayn18370-max/Study-Buddy/internal/config"
	"github.com/rayn18370-max/Study-Buddy/internal/generation"
	"github.com/rayn18370-max/Study-Buddy/internal/platform/gemini"
	"github.com/rayn18370-max/Study-Buddy/internal/platform/logger"
	"github.com/rayn18370-max/Study-Buddy/internal/platform/memory"
	"github.com/rayn18370-max/Study-Buddy/internal/platform/sqlstore"
	"github.com/rayn18370-max/Study-Buddy/internal/service"
	"github.com/rayn18370-max/Study-Buddy/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_type", cfg.Database.Type))

	sessionStore, cleanup, err := openStore(cfg, appLogger)
	if err != nil {
		return err
	}
	defer cleanup()

	generator := buildGenerator(cfg, appLogger)
	studyService := service.NewStudyService(sessionStore, generator, cfg.Study.DailyLimit, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           newRouter(studyService, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		appLogger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// openStore builds the configured session store. The in-memory store is
// the default; nothing else in the application knows which backend is in
// use.
func openStore(cfg *config.Config, appLogger *slog.Logger) (store.SessionStore, func(), error) {
	switch cfg.Database.Type {
	case "sqlite", "sqlite3":
		db, err := sqlstore.Open(cfg.Database.Type, sqlstore.DialectConfig{Path: cfg.Database.Path})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return sqlstore.NewSessionStore(db, appLogger), func() { _ = db.Close() }, nil
	case "postgres", "postgresql":
		db, err := sqlstore.Open(cfg.Database.Type, sqlstore.DialectConfig{URL: cfg.Database.URL})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return sqlstore.NewSessionStore(db, appLogger), func() { _ = db.Close() }, nil
	default:
		appLogger.Info("using in-memory session store; history will not survive restarts")
		return memory.NewSessionStore(), func() {}, nil
	}
}

// buildGenerator creates the Gemini generator when an API key is
// configured. Without one the server still runs; generation requests
// return 503.
func buildGenerator(cfg *config.Config, appLogger *slog.Logger) generation.Generator {
	if cfg.LLM.GeminiAPIKey == "" {
		appLogger.Warn("no Gemini API key configured; generation disabled")
		return nil
	}

	generator, err := gemini.NewGenerator(context.Background(), appLogger, cfg.LLM)
	if err != nil {
		appLogger.Error("failed to create Gemini generator; generation disabled",
			slog.String("error", err.Error()))
		return nil
	}
	return generator
}
