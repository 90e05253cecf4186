package asset

import (
	"strings"

	"github.com/snowdrop-pm/snowdrop/internal/platform"
)

// Expand replaces every known placeholder in template with its value for d.
// Unknown tokens and glob syntax are left untouched.
func Expand(template string, d platform.Descriptor) string {
	return newReplacer(d).Replace(template)
}

func newReplacer(d platform.Descriptor) *strings.Replacer {
	placeholders := d.Placeholders()
	pairs := make([]string, 0, len(placeholders)*2)
	for _, p := range placeholders {
		pairs = append(pairs, p.Token, p.Value)
	}
	return strings.NewReplacer(pairs...)
}
