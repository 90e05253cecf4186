package main

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/urfave/cli/v3"

	"github.com/snowdrop-pm/snowdrop/internal/index"
	"github.com/snowdrop-pm/snowdrop/internal/platform"
)

var (
	Version = "0.3.0"
)

var versionCmd = &cli.Command{
	Name:    "version",
	Aliases: []string{"v"},
	Usage:   "Show version information",
	Action:  versionCommand,
}

func versionCommand(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	fmt.Fprintf(w, "snowdrop version %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", getBuildDate())
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "Platform: %s\n", platform.Current().Triple)
	fmt.Fprintf(w, "Index protocol: %d\n", index.CurrentProtocolVersion)
	return nil
}

func getBuildDate() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.time" {
			return setting.Value
		}
	}

	return "unknown"
}
