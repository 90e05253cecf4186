package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/snowdrop-pm/snowdrop/internal/dirs"
	"github.com/snowdrop-pm/snowdrop/internal/secret"
)

// DefaultIndex is the package index used when none is configured.
const DefaultIndex = "https://raw.githubusercontent.com/snowdroppm/index/main"

// Environment variables that override file settings.
const (
	EnvIndex     = "SNOWDROP_INDEX"
	EnvPAT       = "SNOWDROP_PAT"
	EnvGitHubAPI = "SNOWDROP_GITHUB_API"
)

// Config represents the CLI configuration.
type Config struct {
	// Index is the root URL of the package index.
	Index string `toml:"index"`
	// GitHubAPI overrides the GitHub REST API root, for GitHub Enterprise.
	GitHubAPI string `toml:"github_api"`
	// PAT is the GitHub personal access token. It normally lives in pat.toml.
	PAT secret.Credential `toml:"pat"`
}

type patFile struct {
	PAT string `toml:"pat"`
}

// Credential returns the stored token, possibly unset.
func (c *Config) Credential() secret.Credential {
	return c.PAT
}

// Load reads config.toml, then pat.toml, then the environment overlay.
// Missing files are not an error.
func Load(d dirs.Dirs) (*Config, error) {
	cfg := &Config{
		Index: DefaultIndex,
	}

	if err := loadFile(d.ConfigFile(), cfg); err != nil {
		return nil, err
	}
	if err := loadFile(d.PATFile(), cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	cfg.Index = strings.TrimRight(strings.TrimSpace(cfg.Index), "/")
	if cfg.Index == "" {
		cfg.Index = DefaultIndex
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvIndex); ok && strings.TrimSpace(v) != "" {
		cfg.Index = v
	}
	if v, ok := os.LookupEnv(EnvGitHubAPI); ok && strings.TrimSpace(v) != "" {
		cfg.GitHubAPI = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvPAT); ok && strings.TrimSpace(v) != "" {
		cfg.PAT = secret.New(v)
	}
}

// Save writes the non-secret settings to config.toml.
// Parent directories are created if they don't exist.
func Save(d dirs.Dirs, cfg *Config) error {
	out := struct {
		Index     string `toml:"index"`
		GitHubAPI string `toml:"github_api,omitempty"`
	}{Index: cfg.Index, GitHubAPI: cfg.GitHubAPI}

	data, err := toml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return writeFile(d.ConfigFile(), data, 0644)
}

// SavePAT stores the token in pat.toml, readable only by the owner.
func SavePAT(d dirs.Dirs, pat secret.Credential) error {
	if !pat.IsSet() {
		return fmt.Errorf("refusing to save an empty PAT")
	}

	data, err := toml.Marshal(patFile{PAT: pat.Reveal()})
	if err != nil {
		return fmt.Errorf("marshaling PAT file: %w", err)
	}

	return writeFile(d.PATFile(), data, 0600)
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", filepath.Base(path), err)
	}

	return nil
}
