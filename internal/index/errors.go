package index

import (
	"errors"
	"fmt"

	"github.com/snowdrop-pm/snowdrop/internal/release"
)

var (
	// ErrNoPat is shared with release lookups so callers test for one value.
	ErrNoPat                   = release.ErrNoPat
	ErrRequest                 = errors.New("index request failed")
	ErrStatusCodeNotOk         = errors.New("index returned a non-success status")
	ErrPackageNotFound         = errors.New("package not found")
	ErrMalformedResponse       = errors.New("malformed index response")
	ErrResponseTooLarge        = errors.New("index response too large")
	ErrProtocolVersionMismatch = errors.New("protocol version mismatch")
	ErrProtocolVersionParse    = errors.New("invalid protocol version")
)

// RequestError is a transport failure talking to the index.
type RequestError struct {
	Endpoint string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return []error{ErrRequest, e.Err}
}

type StatusError struct {
	Code     int
	Endpoint string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrStatusCodeNotOk
}

type PackageNotFoundError struct {
	Name string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package %q not found in the index", e.Name)
}

func (e *PackageNotFoundError) Unwrap() error {
	return ErrPackageNotFound
}

// ParseError reports a body that could not be decoded.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedResponse, e.Err}
}

type ProtocolVersionMismatchError struct {
	Expected uint8
	Actual   uint8
}

func (e *ProtocolVersionMismatchError) Error() string {
	return fmt.Sprintf("index speaks protocol version %d, this client speaks %d", e.Actual, e.Expected)
}

func (e *ProtocolVersionMismatchError) Unwrap() error {
	return ErrProtocolVersionMismatch
}

type ProtocolVersionParseError struct {
	Raw string
	Err error
}

func (e *ProtocolVersionParseError) Error() string {
	return fmt.Sprintf("cannot parse protocol version %q: %v", e.Raw, e.Err)
}

func (e *ProtocolVersionParseError) Unwrap() []error {
	return []error{ErrProtocolVersionParse, e.Err}
}
