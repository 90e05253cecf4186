package asset

import (
	"errors"
	"fmt"

	"github.com/snowdrop-pm/snowdrop/internal/release"
)

var (
	ErrNoMatch          = errors.New("no asset matches the naming scheme")
	ErrFailedToCompile  = errors.New("failed to compile naming scheme")
	ErrSelectionAborted = errors.New("asset selection aborted")
)

// NoMatchError carries the full asset list so a caller can offer a manual
// choice.
type NoMatchError struct {
	Pattern string
	Assets  []release.Asset
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no asset matches %q (%d candidates)", e.Pattern, len(e.Assets))
}

func (e *NoMatchError) Unwrap() error {
	return ErrNoMatch
}

// CompileError reports an expanded naming scheme that is not a valid glob.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile naming scheme %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() []error {
	return []error{ErrFailedToCompile, e.Err}
}
