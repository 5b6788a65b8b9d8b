// Package main implements the word store API server: users, bearer tokens
// and the word records the practice and dictionary clients work against.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kheyfetsdan/wordsaveriii/internal/config"
	"github.com/kheyfetsdan/wordsaveriii/internal/platform/logger"
	"github.com/kheyfetsdan/wordsaveriii/internal/platform/postgres"
	"github.com/kheyfetsdan/wordsaveriii/internal/redact"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		slog.Error("server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

func run(migrateCmd string) error {
	// A missing .env file is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.Config{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_max_conns", cfg.Database.MaxConns)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if migrateCmd != "" {
		return postgres.Migrate(ctx, pool, migrateCmd, log)
	}
	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, "up", log); err != nil {
			return err
		}
	}

	app, err := newApplication(cfg, log, pool)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
