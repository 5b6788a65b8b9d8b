package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/kheyfetsdan/wordsaveriii/internal/client"
	"github.com/kheyfetsdan/wordsaveriii/internal/config"
	"github.com/kheyfetsdan/wordsaveriii/internal/session"
)

// errUsage marks a malformed command line.
var errUsage = errors.New("usage")

type command struct {
	usage string
	run   func(ctx context.Context, c *cli, args []string) error
}

var commands = map[string]command{
	"register": {"register [-email e] [-password p] [-confirm p]", runRegister},
	"login":    {"login [-email e] [-password p]", runLogin},
	"logout":   {"logout", runLogout},
	"add":      {"add <word> <translation>", runAdd},
	"show":     {"show <id>", runShow},
	"edit":     {"edit <id> <word> <translation>", runEdit},
	"delete":   {"delete <id>", runDelete},
	"count":    {"count", runCount},
	"clear":    {"clear [-yes]", runClear},
	"dict":     {"dict [-search q] [-sort word|success|failed] [-desc] [-page n] [-i]", runDict},
	"practice": {"practice", runRecall},
	"quiz":     {"quiz", runQuiz},
	"import":   {"import <file.xlsx|file.csv>", runImport},
	"export":   {"export <file.xlsx|file.csv>", runExport},
	"health":   {"health", runHealth},
}

type cli struct {
	cfg     *config.ClientConfig
	session *session.Session
	api     *client.Client
	logger  *slog.Logger
	in      *lineReader
	out     io.Writer
}

func (c *cli) dispatch(ctx context.Context, args []string, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "vocab: unknown command %q\n", args[0])
		printUsage(stderr)
		return 2
	}

	err := cmd.run(ctx, c, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		fmt.Fprintf(stderr, "usage: vocab %s\n", cmd.usage)
		return 2
	default:
		fmt.Fprintf(stderr, "vocab %s: %s\n", args[0], describe(err))
		return 1
	}
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: vocab <command> [arguments]")
	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintf(w, "  vocab %s\n", commands[name].usage)
	}
}

// describe renders an error for the terminal.
func describe(err error) string {
	var (
		apiErr       *client.APIError
		transportErr *client.TransportError
	)
	switch {
	case errors.Is(err, client.ErrNotAuthenticated):
		return "not authenticated, run 'vocab login' first"
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &transportErr):
		return fmt.Sprintf("network error: %v", transportErr.Err)
	}
	return err.Error()
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errUsage, s)
	}
	return id, nil
}

// lineReader hands out input lines either synchronously or through a
// channel for the interactive modes.
type lineReader struct {
	scanner *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r)}
}

// Prompt writes prompt and reads one trimmed line. io.EOF is returned when
// input ends.
func (l *lineReader) Prompt(w io.Writer, prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(w, prompt)
	}
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(l.scanner.Text()), nil
}

// Lines streams trimmed lines until input ends or ctx is done. A Scan
// already in progress is not interrupted.
func (l *lineReader) Lines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for l.scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(l.scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
