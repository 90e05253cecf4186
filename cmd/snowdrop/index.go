package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/snowdrop-pm/snowdrop/internal/index"
)

var indexCmd = &cli.Command{
	Name:  "index",
	Usage: "Maintain a package index",
	Commands: []*cli.Command{
		{
			Name:      "build",
			Usage:     "Validate package documents and generate names.json and proto_version",
			ArgsUsage: "<index-directory>",
			Action:    indexBuildAction,
			Description: `Checks every package document of an index tree and writes the files
clients read first.

The index directory should be organized as:
  index/
  ├── proto_version      (generated)
  ├── names.json         (generated)
  └── packages/
      ├── ripgrep.json
      └── bat.json`,
		},
	},
}

func indexBuildAction(ctx context.Context, c *cli.Command) error {
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absDir); err != nil {
		return fmt.Errorf("index directory does not exist: %s", dir)
	}

	b := index.NewBuilder(absDir)
	names, err := b.Build()
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if err := b.WriteIndex(names); err != nil {
		return err
	}

	w := c.Root().Writer
	fmt.Fprintf(w, "%s Generated index in %s\n", successStyle.Render("✔"), absDir)
	fmt.Fprintf(w, "  - %d packages indexed\n", len(names))
	fmt.Fprintf(w, "  - protocol version %d\n", index.CurrentProtocolVersion)
	return nil
}
