package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kheyfetsdan/wordsaveriii/internal/dictionary"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
)

const dictHelp = "n next, p prev, g <page>, s <search>, o <word|success|failed>, r refresh, q quit"

func runDict(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("dict")
	search := fs.String("search", "", "filter by word or translation")
	sortField := fs.String("sort", string(domain.SortByWord), "sort field: word, success or failed")
	desc := fs.Bool("desc", false, "sort descending")
	page := fs.Int("page", 1, "page number, starting at 1")
	interactive := fs.Bool("i", false, "browse interactively")
	if err := fs.Parse(args); err != nil {
		return err
	}

	field, err := domain.ParseSortField(*sortField)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	key := domain.SortKey{Field: field, Direction: domain.Ascending}
	if *desc {
		key.Direction = domain.Descending
	}

	pager, err := dictionary.NewPager(c.api, c.cfg.Dictionary.PageSize, c.logger)
	if err != nil {
		return err
	}
	if err := pager.SetQuery(ctx, *search); err != nil {
		return err
	}
	if err := pager.SetSort(ctx, key); err != nil {
		return err
	}
	if *page > 1 {
		if err := pager.SetPage(ctx, *page-1); err != nil {
			return err
		}
	}

	renderPage(c.out, pager.View())
	if !*interactive {
		return nil
	}
	return browse(ctx, c, pager)
}

func browse(ctx context.Context, c *cli, pager *dictionary.Pager) error {
	c.printf("%s\n", dictHelp)
	for {
		line, err := c.in.Prompt(c.out, "> ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "q", "quit":
			return nil
		case "n", "next":
			err = pager.Next(ctx)
		case "p", "prev":
			err = pager.Prev(ctx)
		case "g", "page":
			n, convErr := strconv.Atoi(arg)
			if convErr != nil {
				c.printf("page must be a number\n")
				continue
			}
			err = pager.SetPage(ctx, n-1)
		case "s", "search":
			err = pager.SetQuery(ctx, arg)
		case "o", "sort":
			field, parseErr := domain.ParseSortField(arg)
			if parseErr != nil {
				c.printf("%v\n", parseErr)
				continue
			}
			err = pager.ToggleSort(ctx, field)
		case "r", "refresh", "":
			err = pager.Refresh(ctx)
		default:
			c.printf("%s\n", dictHelp)
			continue
		}

		if err != nil {
			c.printf("error: %s\n", describe(err))
		}
		renderPage(c.out, pager.View())
	}
}

func renderPage(w io.Writer, v dictionary.View) {
	if v.Total == 0 {
		if v.Query != "" {
			fmt.Fprintf(w, "no words match %q\n", v.Query)
		} else {
			fmt.Fprintln(w, "no words saved")
		}
		return
	}

	fmt.Fprintf(w, "%-6s %-24s %-24s %7s %5s\n", "id", "word", "translation", "correct", "wrong")
	for _, word := range v.Words {
		fmt.Fprintf(w, "%-6d %-24s %-24s %7d %5d\n", word.ID, word.Word, word.Translation, word.Success, word.Failed)
	}

	fmt.Fprintf(w, "page %d of %d, %d words, sorted by %s", v.Page+1, v.TotalPages, v.Total, v.Sort)
	if v.Query != "" {
		fmt.Fprintf(w, ", search %q", v.Query)
	}
	fmt.Fprintln(w)
}
