package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/kheyfetsdan/wordsaveriii/internal/practice"
)

var errQuit = errors.New("quit")

func runRecall(ctx context.Context, c *cli, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	c.printf("type the translation, ? to reveal it, Enter for the next word, q to quit\n")
	return c.practice(ctx, practice.Recall)
}

func runQuiz(ctx context.Context, c *cli, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	c.printf("pick 1-4, Enter for the next word, q to quit\n")
	return c.practice(ctx, practice.Quiz)
}

func (c *cli) practice(ctx context.Context, mode practice.Mode) error {
	if !c.session.Authenticated() {
		return errors.New("not authenticated, run 'vocab login' first")
	}

	reporter := practice.NewAsyncReporter(c.api, practice.DefaultReporterConfig(), c.logger)
	defer reporter.Close()

	cfg := practice.DefaultConfig(mode)
	cfg.CountdownTicks = c.cfg.Practice.CountdownSeconds
	engine := practice.New(c.api, reporter, cfg, c.logger)
	defer engine.Close()

	snapshots, unsubscribe := engine.Subscribe()
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)
	lines := c.in.Lines(gctx)

	g.Go(func() error {
		r := &renderer{out: c.out}
		for {
			select {
			case <-gctx.Done():
				return nil
			case s, ok := <-snapshots:
				if !ok {
					return nil
				}
				r.render(s)
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case err := <-reporter.Errors():
				if err != nil {
					c.logger.Warn("statistics not saved", "error", err)
				}
			}
		}
	})

	g.Go(func() error {
		_ = engine.LoadNewWord(gctx)
		for {
			select {
			case <-gctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return errQuit
				}
				if err := c.handlePracticeInput(gctx, engine, mode, line); err != nil {
					return err
				}
			}
		}
	})

	err := g.Wait()
	totals := engine.Snapshot().Totals
	c.printf("\n%d answered, %d correct\n", totals.Answered, totals.Correct)

	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *cli) handlePracticeInput(ctx context.Context, engine *practice.Engine, mode practice.Mode, line string) error {
	if line == "q" || line == "quit" {
		return errQuit
	}

	phase := engine.Snapshot().Phase
	if line == "" || phase != practice.Ready {
		// Enter skips the countdown or retries after an error.
		if phase != practice.Loading {
			_ = engine.LoadNewWord(ctx)
		}
		return nil
	}

	var err error
	switch {
	case mode == practice.Recall && line == "?":
		err = engine.ShowTranslation()
	case mode == practice.Recall:
		_, err = engine.CheckAnswer(line)
	default:
		n, convErr := strconv.Atoi(line)
		if convErr != nil {
			c.printf("pick a number from 1 to 4\n")
			return nil
		}
		_, err = engine.Select(n - 1)
	}

	switch {
	case err == nil:
	case errors.Is(err, practice.ErrEmptyAnswer),
		errors.Is(err, practice.ErrInvalidChoice),
		errors.Is(err, practice.ErrChoiceDisabled),
		errors.Is(err, practice.ErrAlreadyAnswered):
		c.printf("%v\n", err)
	default:
		return err
	}
	return nil
}

// renderer prints each change of a practice snapshot once.
type renderer struct {
	out   io.Writer
	last  practice.Snapshot
	shown bool
}

func (r *renderer) render(s practice.Snapshot) {
	prev := r.last
	first := !r.shown
	r.last, r.shown = s, true

	newRound := first || s.Round != prev.Round
	switch s.Phase {
	case practice.Ready:
		if newRound || prev.Phase != practice.Ready {
			r.showWord(s)
		} else if s.Mode == practice.Quiz {
			fmt.Fprintln(r.out, "wrong, try again")
			r.showCandidates(s)
		}
	case practice.Answered, practice.CountingDown:
		if prev.Phase == practice.Ready || newRound {
			if s.Correct {
				fmt.Fprintf(r.out, "correct! %s = %s\n", s.Word, s.Translation)
			} else {
				fmt.Fprintf(r.out, "the answer is: %s\n", s.Translation)
			}
		}
		if s.Phase == practice.CountingDown && s.Countdown > 0 && s.Countdown != prev.Countdown {
			fmt.Fprintf(r.out, "next word in %d...\n", s.Countdown)
		}
	case practice.Failed:
		if newRound || prev.Phase != practice.Failed {
			fmt.Fprintf(r.out, "error: %s (Enter to retry, q to quit)\n", s.Message)
		}
	}
}

func (r *renderer) showWord(s practice.Snapshot) {
	fmt.Fprintf(r.out, "\n%s\n", s.Word)
	if s.Mode == practice.Quiz {
		r.showCandidates(s)
	}
}

func (r *renderer) showCandidates(s practice.Snapshot) {
	for i, cand := range s.Candidates {
		mark := " "
		if cand.Disabled {
			mark = "x"
		}
		fmt.Fprintf(r.out, "  %d) [%s] %s\n", i+1, mark, cand.Text)
	}
}
