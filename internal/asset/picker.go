// Package asset picks the release asset built for the current platform.
//
// A package's naming scheme is a glob with placeholders such as
// {{llvm_triple}}. The picker expands the placeholders, compiles the glob and
// returns the first asset, in release order, whose name matches. Publishers
// should write schemes that match one asset per platform: when several match,
// the first one wins and a warning is logged.
package asset

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/snowdrop-pm/snowdrop/internal/log"
	"github.com/snowdrop-pm/snowdrop/internal/platform"
	"github.com/snowdrop-pm/snowdrop/internal/release"
)

type Picker struct {
	platform platform.Descriptor
	replacer *strings.Replacer
}

func NewPicker(d platform.Descriptor) *Picker {
	return &Picker{
		platform: d,
		replacer: newReplacer(d),
	}
}

func (p *Picker) Platform() platform.Descriptor {
	return p.platform
}

func (p *Picker) Expand(scheme string) string {
	return p.replacer.Replace(scheme)
}

// Compile expands scheme for the picker's platform and compiles the glob.
// A placeholder left after expansion, or a brace group inside another, is a
// compile error: the glob library would read them as alternations.
func (p *Picker) Compile(scheme string) (glob.Glob, error) {
	pattern := p.Expand(scheme)
	if err := checkBraces(pattern); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return g, nil
}

// Choose returns the first asset matching scheme. It returns a *NoMatchError
// when nothing matches and a *CompileError when the expanded scheme is not a
// valid glob.
func (p *Picker) Choose(assets []release.Asset, scheme string) (release.Asset, error) {
	g, err := p.Compile(scheme)
	if err != nil {
		return release.Asset{}, err
	}
	pattern := p.Expand(scheme)

	var matches []release.Asset
	for _, a := range assets {
		if g.Match(a.Name) {
			matches = append(matches, a)
		}
	}

	if len(matches) == 0 {
		log.Debug("No asset matched naming scheme", "pattern", pattern, "assets", len(assets))
		return release.Asset{}, &NoMatchError{Pattern: pattern, Assets: assets}
	}

	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		log.Warn("Naming scheme matches several assets, using the first",
			"pattern", pattern, "chosen", matches[0].Name, "candidates", strings.Join(names, ", "))
	}

	log.Debug("Found a match", "asset", matches[0].Name)
	return matches[0], nil
}

var leftoverPlaceholder = regexp.MustCompile(`\{\{\s*[A-Za-z0-9_]*\s*\}\}`)

func checkBraces(pattern string) error {
	if tok := leftoverPlaceholder.FindString(pattern); tok != "" {
		return fmt.Errorf("unknown placeholder %s", tok)
	}

	depth := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '{':
			if depth > 0 {
				return errors.New("nested brace groups are not supported")
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return nil
}

// Chooser lets a person pick an asset when the naming scheme matched nothing.
type Chooser interface {
	ChooseAsset(ctx context.Context, assets []release.Asset) (release.Asset, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, assets []release.Asset) (release.Asset, error)

func (f ChooserFunc) ChooseAsset(ctx context.Context, assets []release.Asset) (release.Asset, error) {
	return f(ctx, assets)
}

// Resolve runs Choose and falls back to chooser on a NoMatch. A nil chooser
// returns the NoMatch error as is. Compile errors never reach the chooser.
func Resolve(ctx context.Context, p *Picker, chooser Chooser, assets []release.Asset, scheme string) (release.Asset, error) {
	chosen, err := p.Choose(assets, scheme)
	if err == nil {
		return chosen, nil
	}

	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) || chooser == nil || len(noMatch.Assets) == 0 {
		return release.Asset{}, err
	}

	log.Debug("Didn't find a match, prompting user", "candidates", len(noMatch.Assets))
	chosen, err = chooser.ChooseAsset(ctx, noMatch.Assets)
	if err != nil {
		return release.Asset{}, err
	}
	return chosen, nil
}
