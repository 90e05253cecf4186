package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/snowdrop-pm/snowdrop/internal/dirs"
	"github.com/snowdrop-pm/snowdrop/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newApp()
	if err := app.Run(ctx, os.Args); err != nil {
		printError(app.ErrWriter, err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "snowdrop",
		Usage:     "A package manager for GitHub Releases",
		Version:   Version,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Reader:    os.Stdin,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			installCmd,
			searchCmd,
			authCmd,
			indexCmd,
			versionCmd,
		},
	}
}

// setup runs once before any command. Directories are resolved here and
// handed to actions through the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	ctx, err := setupLogging(ctx, cmd)
	if err != nil {
		return ctx, err
	}
	d, err := dirs.FromEnv()
	return withDirs(ctx, d, err), nil
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := log.SetupFromEnv(); err != nil {
		return ctx, fmt.Errorf("invalid %s: %w", log.EnvLevel, err)
	}
	if cmd.Bool("debug") {
		log.SetLevel(slog.LevelDebug)
	}
	return ctx, nil
}
