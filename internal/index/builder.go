package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/snowdrop-pm/snowdrop/internal/asset"
	"github.com/snowdrop-pm/snowdrop/internal/log"
	"github.com/snowdrop-pm/snowdrop/internal/platform"
)

// Naming schemes are checked against these platforms when building.
var builderPlatforms = []platform.Descriptor{
	platform.New("linux", "amd64"),
	platform.New("darwin", "arm64"),
	platform.New("windows", "amd64"),
}

// Builder generates the derived files of an index tree from its package
// documents.
type Builder struct {
	baseDir     string
	packagesDir string
}

func NewBuilder(baseDir string) *Builder {
	return &Builder{
		baseDir:     baseDir,
		packagesDir: filepath.Join(baseDir, packagesDir),
	}
}

// Build reads every packages/*.json document, checks it the way a client
// would, and returns the package names sorted.
func (b *Builder) Build() ([]string, error) {
	entries, err := os.ReadDir(b.packagesDir)
	if err != nil {
		return nil, fmt.Errorf("reading packages directory: %w", err)
	}

	var names []string
	var problems []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		m, err := b.loadPackage(e.Name())
		if err != nil {
			problems = append(problems, err)
			continue
		}
		names = append(names, m.Name)
		log.Debug("Indexed package", "name", m.Name, "repo", m.ReleaseRepo().String())
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	sort.Strings(names)
	log.Debug("Built index", "packages", len(names))
	return names, nil
}

func (b *Builder) loadPackage(filename string) (PackageMetadata, error) {
	path := filepath.Join(b.packagesDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return PackageMetadata{}, fmt.Errorf("reading %s: %w", filename, err)
	}

	var m PackageMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return PackageMetadata{}, fmt.Errorf("%s: %w", filename, err)
	}

	stem := strings.TrimSuffix(filename, ".json")
	if m.Name != stem {
		return PackageMetadata{}, fmt.Errorf("%s: name %q does not match the file name", filename, m.Name)
	}
	if strings.TrimSpace(m.NamingScheme) == "" {
		return PackageMetadata{}, fmt.Errorf("%s: naming_scheme is empty", filename)
	}

	for _, d := range builderPlatforms {
		if _, err := asset.NewPicker(d).Compile(m.NamingScheme); err != nil {
			return PackageMetadata{}, fmt.Errorf("%s: %w", filename, err)
		}
	}

	return m, nil
}

// WriteIndex writes names.json and proto_version next to the packages
// directory.
func (b *Builder) WriteIndex(names []string) error {
	if names == nil {
		names = []string{}
	}

	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal names: %w", err)
	}

	namesPath := filepath.Join(b.baseDir, namesFile)
	if err := os.WriteFile(namesPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", namesFile, err)
	}

	protoPath := filepath.Join(b.baseDir, protoVersionFile)
	proto := strconv.Itoa(int(CurrentProtocolVersion)) + "\n"
	if err := os.WriteFile(protoPath, []byte(proto), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", protoVersionFile, err)
	}

	log.Debug("Wrote index files", "dir", b.baseDir, "packages", len(names))
	return nil
}
