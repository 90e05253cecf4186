package platform

// osNames maps GOOS values whose conventional name differs.
var osNames = map[string]string{
	"darwin": "macos",
}

// osAliases maps a normalized OS name to the alternative spelling used by
// some release naming conventions.
var osAliases = map[string]string{
	"macos": "osx",
}

var tripleArch = map[string]string{
	"amd64":    "x86_64",
	"arm64":    "aarch64",
	"386":      "i686",
	"arm":      "armv7",
	"riscv64":  "riscv64gc",
	"ppc64le":  "powerpc64le",
	"ppc64":    "powerpc64",
	"s390x":    "s390x",
	"loong64":  "loongarch64",
	"mips64le": "mips64el",
	"wasm":     "wasm32",
}

// tripleVendorOS maps GOOS to the vendor-os(-env) part of the triple.
var tripleVendorOS = map[string]string{
	"linux":   "unknown-linux-gnu",
	"darwin":  "apple-darwin",
	"ios":     "apple-ios",
	"windows": "pc-windows-msvc",
	"freebsd": "unknown-freebsd",
	"netbsd":  "unknown-netbsd",
	"openbsd": "unknown-openbsd",
	"illumos": "unknown-illumos",
	"android": "linux-android",
	"js":      "unknown-unknown",
}

func normalizeOS(goos string) string {
	if name, ok := osNames[goos]; ok {
		return name
	}
	return goos
}

func osAlias(osName string) string {
	if alias, ok := osAliases[osName]; ok {
		return alias
	}
	return osName
}

func triple(goos, goarch string) string {
	arch, ok := tripleArch[goarch]
	if !ok {
		arch = goarch
	}

	vendorOS, ok := tripleVendorOS[goos]
	if !ok {
		vendorOS = "unknown-" + goos
	}

	// 32-bit ARM Linux builds are hard-float.
	if goarch == "arm" && goos == "linux" {
		vendorOS = "unknown-linux-gnueabihf"
	}
	if goarch == "arm" && goos == "android" {
		vendorOS = "linux-androideabi"
	}
	return arch + "-" + vendorOS
}
