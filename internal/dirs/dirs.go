// Package dirs resolves the per-user directories snowdrop reads and writes.
//
// A Dirs value is resolved once per run and passed to whatever needs a path.
package dirs

import (
	"errors"
	"os"
	"path/filepath"
)

const appName = "snowdrop"

// Dirs holds the resolved directory layout.
type Dirs struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// New lays out the directories below home, XDG style.
func New(home string) Dirs {
	return Dirs{
		Home:   home,
		Config: filepath.Join(home, ".config", appName),
		Data:   filepath.Join(home, ".local", "share", appName),
		Cache:  filepath.Join(home, ".cache", appName),
	}
}

// FromEnv resolves the layout for the current user. XDG_CONFIG_HOME and
// XDG_CACHE_HOME override the defaults when set.
func FromEnv() (Dirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dirs{}, err
	}
	if home == "" {
		return Dirs{}, errors.New("could not determine the user home directory")
	}

	d := New(home)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); filepath.IsAbs(xdg) {
		d.Config = filepath.Join(xdg, appName)
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(xdg) {
		d.Data = filepath.Join(xdg, appName)
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); filepath.IsAbs(xdg) {
		d.Cache = filepath.Join(xdg, appName)
	}
	return d, nil
}

func (d Dirs) ConfigFile() string {
	return filepath.Join(d.Config, "config.toml")
}

// PATFile is kept apart from ConfigFile so config.toml can be shared safely.
func (d Dirs) PATFile() string {
	return filepath.Join(d.Config, "pat.toml")
}

func (d Dirs) CatalogCache() string {
	return filepath.Join(d.Cache, "catalog.db")
}
