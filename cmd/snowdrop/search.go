package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/snowdrop-pm/snowdrop/internal/search"
)

var errNoMatches = errors.New("No matches found.")

var searchCmd = &cli.Command{
	Name:      "search",
	Usage:     "Search the index for packages",
	ArgsUsage: "<query>",
	Flags: []cli.Flag{
		&cli.FloatFlag{
			Name:  "min-score",
			Usage: "The minimum score to use when doing a fuzzy search",
			Value: search.DefaultMinScore,
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of results",
			Value: search.DefaultLimit,
		},
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: "Ignore the cached package list",
		},
		newIndexFlag(),
	},
	Action: searchAction,
}

func searchAction(ctx context.Context, c *cli.Command) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	d, cfg, err := loadConfig(ctx, c)
	if err != nil {
		return err
	}

	client, err := connectIndex(ctx, cfg)
	if err != nil {
		return err
	}

	names, err := packageNames(ctx, d, client, c.Bool("refresh"))
	if err != nil {
		return err
	}

	searcher := search.New(
		search.WithLimit(c.Int("limit")),
		search.WithMinScore(c.Float("min-score")),
	)
	matches := searcher.Search(query, names)
	if len(matches) == 0 {
		return errNoMatches
	}

	w := c.Root().Writer
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d matches found:", len(matches))))
	for _, m := range matches {
		fmt.Fprintln(w, matchStyle.Render(" - "+m.Name))
	}
	return nil
}
