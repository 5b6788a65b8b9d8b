// Package main implements vocab, the terminal client of the word store:
// account commands, single-word commands, the paged dictionary and the two
// practice modes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kheyfetsdan/wordsaveriii/internal/client"
	"github.com/kheyfetsdan/wordsaveriii/internal/config"
	"github.com/kheyfetsdan/wordsaveriii/internal/platform/logger"
	"github.com/kheyfetsdan/wordsaveriii/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "warning: failed to load .env file: %v\n", err)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(stderr, "vocab: %v\n", err)
		return 1
	}

	log, err := logger.Setup(logger.Config{Level: cfg.Client.LogLevel, Output: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "vocab: %v\n", err)
		return 1
	}

	c, err := newCLI(cfg, log, stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "vocab: %v\n", err)
		return 1
	}
	return c.dispatch(ctx, args, stderr)
}

func newCLI(cfg *config.ClientConfig, log *slog.Logger, in io.Reader, out io.Writer) (*cli, error) {
	var store session.TokenStore
	if cfg.Client.TokenFile != "" {
		store = session.NewFileTokenStore(cfg.Client.TokenFile)
	}
	sess := session.New(store, log)
	if err := sess.Restore(); err != nil {
		log.Warn("could not restore session", "error", err)
	}

	api, err := client.New(cfg.Client.BaseURL, sess,
		client.WithTimeout(cfg.Client.Timeout),
		client.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &cli{
		cfg:     cfg,
		session: sess,
		api:     api,
		logger:  log,
		in:      newLineReader(in),
		out:     out,
	}, nil
}
