package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kheyfetsdan/wordsaveriii/internal/config"
	"github.com/kheyfetsdan/wordsaveriii/internal/platform/postgres"
	"github.com/kheyfetsdan/wordsaveriii/internal/service"
	"github.com/kheyfetsdan/wordsaveriii/internal/service/auth"
	"github.com/kheyfetsdan/wordsaveriii/internal/store"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore store.UserStore
	wordStore store.WordStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	wordService      service.WordService
}

// newApplication wires the stores and services on top of pool.
func newApplication(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	return newApplicationWith(cfg, logger,
		postgres.NewPostgresUserStore(pool, cfg.Auth.BCryptCost, logger),
		postgres.NewPostgresWordStore(pool, logger),
		pool,
		jwtService,
		auth.NewBcryptVerifier(),
	)
}

// newApplicationWith builds an application from explicit dependencies.
func newApplicationWith(
	cfg *config.Config,
	logger *slog.Logger,
	users store.UserStore,
	words store.WordStore,
	db store.TxBeginner,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
) (*application, error) {
	wordService, err := service.NewWordService(words, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create word service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           logger,
		userStore:        users,
		wordStore:        words,
		jwtService:       jwtService,
		passwordVerifier: verifier,
		wordService:      wordService,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
