package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/snowdrop-pm/snowdrop/internal/asset"
	"github.com/snowdrop-pm/snowdrop/internal/dirs"
	"github.com/snowdrop-pm/snowdrop/internal/index"
	"github.com/snowdrop-pm/snowdrop/internal/log"
	"github.com/snowdrop-pm/snowdrop/internal/platform"
	"github.com/snowdrop-pm/snowdrop/internal/release"
	"github.com/snowdrop-pm/snowdrop/internal/search"
)

var errUserAborted = errors.New("user aborted operation")

var installCmd = &cli.Command{
	Name:      "install",
	Usage:     "Install a package",
	ArgsUsage: "<package>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Resolve the asset without writing any files",
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Don't ask for confirmation",
		},
		&cli.StringFlag{
			Name:  "platform",
			Usage: "Target platform as os/arch (default: this machine)",
		},
		&cli.StringFlag{
			Name:  "github-api",
			Usage: "GitHub API URL, for GitHub Enterprise (overrides config)",
		},
		newIndexFlag(),
	},
	Action: installAction,
}

func installAction(ctx context.Context, c *cli.Command) error {
	name := strings.TrimSpace(c.Args().First())
	if name == "" {
		return fmt.Errorf("a package name is required")
	}

	target, err := targetPlatform(c.String("platform"))
	if err != nil {
		return err
	}

	d, cfg, err := loadConfig(ctx, c)
	if err != nil {
		return err
	}

	client, err := connectIndex(ctx, cfg)
	if err != nil {
		return err
	}

	log.Info("Fetching package metadata", "package", name)
	metadata, err := client.GetPackage(ctx, name)
	if err != nil {
		return withSuggestions(ctx, d, client, name, err)
	}
	log.Debug("Fetched package metadata", "name", metadata.Name, "repo", metadata.ReleaseRepo().String(), "scheme", metadata.NamingScheme)

	lookupOpts := []release.Option{release.WithUserAgent(client.UserAgent())}
	api := cfg.GitHubAPI
	if v := c.String("github-api"); v != "" {
		api = v
	}
	if api != "" {
		lookupOpts = append(lookupOpts, release.WithBaseURL(api))
	}
	lookup, err := release.NewLookup(lookupOpts...)
	if err != nil {
		return err
	}

	rel, err := lookup.GetLatestRelease(ctx, metadata.ReleaseRepo(), client.Credential())
	if err != nil {
		return err
	}

	root := c.Root()
	interactive := isTerminal(root.Reader)

	if !c.Bool("yes") {
		if !interactive {
			return fmt.Errorf("refusing to install without confirmation, pass --yes")
		}
		ok, err := confirm(ctx, root.Reader, root.ErrWriter, fmt.Sprintf("Install %s?", rel.DisplayName()))
		if err != nil {
			return err
		}
		if !ok {
			return errUserAborted
		}
	}

	var chooser asset.Chooser
	if interactive {
		chooser = tuiChooser{in: root.Reader, out: root.ErrWriter}
	}

	picker := asset.NewPicker(target)
	chosen, err := asset.Resolve(ctx, picker, chooser, rel.Assets, metadata.NamingScheme)
	if err != nil {
		return err
	}

	if c.Bool("dry-run") {
		log.Debug("Dry run, nothing will be written")
	}

	w := root.Writer
	fmt.Fprintf(w, "%s %s %s\n", successStyle.Render("✔"), titleStyle.Render(metadata.PrettyName), dimStyle.Render(rel.DisplayName()))
	fmt.Fprintf(w, "  Asset:    %s\n", chosen.Name)
	fmt.Fprintf(w, "  Size:     %s\n", humanize.Bytes(uint64(max(chosen.Size, 0))))
	fmt.Fprintf(w, "  URL:      %s\n", chosen.DownloadURL)
	fmt.Fprintf(w, "  Platform: %s\n", target.Triple)
	return nil
}

func targetPlatform(raw string) (platform.Descriptor, error) {
	if raw == "" {
		return platform.Current(), nil
	}

	goos, goarch, ok := strings.Cut(raw, "/")
	if !ok || goos == "" || goarch == "" {
		return platform.Descriptor{}, fmt.Errorf("invalid platform %q, expected os/arch", raw)
	}
	return platform.New(goos, goarch), nil
}

// withSuggestions adds similar package names to a not-found error.
func withSuggestions(ctx context.Context, d dirs.Dirs, client *index.Client, name string, err error) error {
	if !errors.Is(err, index.ErrPackageNotFound) {
		return err
	}

	names, namesErr := packageNames(ctx, d, client, false)
	if namesErr != nil {
		log.Debug("Could not load package names for suggestions", "error", namesErr)
		return err
	}

	return &suggestionError{err: err, suggestions: search.Suggest(name, names)}
}
