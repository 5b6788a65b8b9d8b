package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kheyfetsdan/wordsaveriii/internal/client"
	"github.com/kheyfetsdan/wordsaveriii/internal/wordio"
)

func runAdd(ctx context.Context, c *cli, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	w, err := c.api.SaveWord(ctx, args[0], args[1])
	if errors.Is(err, client.ErrDuplicate) {
		return fmt.Errorf("%q is already in your dictionary", args[0])
	}
	if err != nil {
		return err
	}
	c.printf("saved #%d %s = %s\n", w.ID, w.Word, w.Translation)
	return nil
}

func runShow(ctx context.Context, c *cli, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	w, err := c.api.GetWord(ctx, id)
	if err != nil {
		return err
	}

	c.printf("#%d\n", w.ID)
	c.printf("word:        %s\n", w.Word)
	c.printf("translation: %s\n", w.Translation)
	c.printf("correct:     %d\n", w.Success)
	c.printf("wrong:       %d\n", w.Failed)
	c.printf("added:       %s\n", w.AddedAt.Local().Format(time.DateTime))
	return nil
}

func runEdit(ctx context.Context, c *cli, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	w, err := c.api.UpdateWord(ctx, id, args[1], args[2])
	if err != nil {
		return err
	}
	c.printf("updated #%d %s = %s\n", w.ID, w.Word, w.Translation)
	return nil
}

func runDelete(ctx context.Context, c *cli, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := c.api.DeleteWord(ctx, id); err != nil {
		return err
	}
	c.printf("deleted #%d\n", id)
	return nil
}

func runCount(ctx context.Context, c *cli, _ []string) error {
	n, err := c.api.CountWords(ctx)
	if err != nil {
		return err
	}
	c.printf("%d words\n", n)
	return nil
}

func runClear(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("clear")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*yes {
		answer, err := c.in.Prompt(c.out, "delete every saved word? [y/N] ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			c.printf("cancelled\n")
			return nil
		}
	}

	n, err := c.api.ClearWords(ctx)
	if err != nil {
		return err
	}
	c.printf("deleted %d words\n", n)
	return nil
}

func runImport(ctx context.Context, c *cli, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	entries, rowErrs, err := wordio.ReadFile(args[0])
	if err != nil {
		return err
	}
	for _, re := range rowErrs {
		c.printf("skipped %v\n", re)
	}

	result, err := wordio.Import(ctx, c.api, entries, c.logger)
	if result != nil {
		for _, re := range result.Failed {
			c.printf("failed %s\n", describeRow(re))
		}
		c.printf("imported %d words, %d already saved\n", result.Created, result.Duplicates)
	}
	return err
}

func describeRow(re wordio.RowError) string {
	return fmt.Sprintf("row %d: %s", re.Row, describe(re.Err))
}

func runExport(ctx context.Context, c *cli, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	n, err := wordio.Export(ctx, c.api, args[0])
	if err != nil {
		return err
	}
	c.printf("exported %d words to %s\n", n, args[0])
	return nil
}
