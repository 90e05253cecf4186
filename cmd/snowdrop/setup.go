package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/snowdrop-pm/snowdrop/cache"
	"github.com/snowdrop-pm/snowdrop/internal/config"
	"github.com/snowdrop-pm/snowdrop/internal/dirs"
	"github.com/snowdrop-pm/snowdrop/internal/index"
	"github.com/snowdrop-pm/snowdrop/internal/log"
)

const indexFlagName = "index"

var errDirsNotResolved = errors.New("directories were not resolved")

type dirsKey struct{}

// resolvedDirs keeps the resolution error so commands that never touch the
// filesystem, like version, still run without a home directory.
type resolvedDirs struct {
	dirs dirs.Dirs
	err  error
}

func withDirs(ctx context.Context, d dirs.Dirs, err error) context.Context {
	return context.WithValue(ctx, dirsKey{}, resolvedDirs{dirs: d, err: err})
}

func dirsFrom(ctx context.Context) (dirs.Dirs, error) {
	r, ok := ctx.Value(dirsKey{}).(resolvedDirs)
	if !ok {
		return dirs.Dirs{}, errDirsNotResolved
	}
	if r.err != nil {
		return dirs.Dirs{}, fmt.Errorf("resolving directories: %w", r.err)
	}
	return r.dirs, nil
}

func newIndexFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  indexFlagName,
		Usage: "Package index URL (overrides config)",
	}
}

func loadConfig(ctx context.Context, c *cli.Command) (dirs.Dirs, *config.Config, error) {
	d, err := dirsFrom(ctx)
	if err != nil {
		return dirs.Dirs{}, nil, err
	}

	cfg, err := config.Load(d)
	if err != nil {
		return dirs.Dirs{}, nil, err
	}

	if idx := c.String(indexFlagName); idx != "" {
		cfg.Index = idx
	}
	log.Debug("Loaded config", "index", cfg.Index, "pat", cfg.Credential())

	return d, cfg, nil
}

// connectIndex leaves the metadata cache off: every invocation fetches a
// single package.
func connectIndex(ctx context.Context, cfg *config.Config) (*index.Client, error) {
	return index.New(ctx, cfg.Index,
		index.WithCredential(cfg.Credential()),
		index.WithUserVersion(Version),
	)
}

// packageNames reads the catalog through the on-disk cache. A cache that can't
// be opened only costs a request.
func packageNames(ctx context.Context, d dirs.Dirs, client *index.Client, refresh bool) ([]string, error) {
	store, err := cache.NewCache(d.CatalogCache())
	if err != nil {
		log.Warn("Package name cache unavailable", "error", err)
		return client.GetNames(ctx)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Closing package name cache", "error", err)
		}
	}()

	return cache.NewCatalog(store, client.Index()).Names(ctx, client.GetNames, refresh)
}
