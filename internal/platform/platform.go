// Package platform describes the machine snowdrop is running on, in the
// vocabulary package publishers use to name release assets.
//
// A Descriptor is plain data resolved from GOOS and GOARCH; building one never
// fails. Unknown operating systems and architectures pass through verbatim.
package platform

import "runtime"

// Placeholder tokens understood in naming schemes.
const (
	TokenTriple  = "{{llvm_triple}}"
	TokenOS      = "{{basic_platform}}"
	TokenOSAlias = "{{basic_platform_osx}}"
)

// Descriptor holds the platform facts exposed to naming schemes.
type Descriptor struct {
	GOOS   string // runtime.GOOS the descriptor was built from
	GOARCH string // runtime.GOARCH the descriptor was built from
	Triple string // LLVM target triple, e.g. "x86_64-unknown-linux-gnu"
	OS     string // normalized OS name, e.g. "linux", "macos", "windows"
	// OSAlias is the OS name some release conventions prefer ("osx" on macOS).
	OSAlias string
}

// Placeholder is one token and the value it expands to.
type Placeholder struct {
	Token string
	Value string
}

// Current describes the running binary's platform.
func Current() Descriptor {
	return New(runtime.GOOS, runtime.GOARCH)
}

// New builds a descriptor for an arbitrary GOOS/GOARCH pair.
func New(goos, goarch string) Descriptor {
	osName := normalizeOS(goos)
	return Descriptor{
		GOOS:    goos,
		GOARCH:  goarch,
		Triple:  triple(goos, goarch),
		OS:      osName,
		OSAlias: osAlias(osName),
	}
}

// Placeholders returns the token mapping in a fixed order.
func (d Descriptor) Placeholders() []Placeholder {
	return []Placeholder{
		{Token: TokenTriple, Value: d.Triple},
		{Token: TokenOS, Value: d.OS},
		{Token: TokenOSAlias, Value: d.OSAlias},
	}
}

// Lookup returns the value for token, if it is a known placeholder.
func (d Descriptor) Lookup(token string) (string, bool) {
	for _, p := range d.Placeholders() {
		if p.Token == token {
			return p.Value, true
		}
	}
	return "", false
}

func (d Descriptor) String() string {
	return d.Triple
}
