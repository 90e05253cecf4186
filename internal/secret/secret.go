// Package secret holds the personal access token used against the index server
// and the release host.
//
// A Credential never prints its value. The only way to read it back is Reveal.
package secret

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

const redacted = "[REDACTED]"

// Credential is an opaque token. The zero value means "no credential".
//
// Copies of a Credential share the same backing bytes, so Destroy on any copy
// wipes the token for all of them.
type Credential struct {
	p *payload
}

type payload struct {
	b []byte
}

// New wraps token. Surrounding whitespace is dropped; an empty token yields the
// zero Credential.
func New(token string) Credential {
	token = strings.TrimSpace(token)
	if token == "" {
		return Credential{}
	}
	p := &payload{b: []byte(token)}
	runtime.AddCleanup(p, func(b []byte) { clear(b) }, p.b)
	return Credential{p: p}
}

// IsSet reports whether the credential carries a token.
func (c Credential) IsSet() bool {
	return c.p != nil && len(c.p.b) > 0
}

// Reveal returns the raw token. Callers must not log or persist the result
// except through the credential store.
func (c Credential) Reveal() string {
	if !c.IsSet() {
		return ""
	}
	return string(c.p.b)
}

// Destroy zeroes the token in place.
func (c Credential) Destroy() {
	if c.p == nil {
		return
	}
	clear(c.p.b)
	c.p.b = nil
}

func (c Credential) String() string {
	if !c.IsSet() {
		return "<unset>"
	}
	return redacted
}

func (c Credential) GoString() string {
	return "secret.Credential{" + c.String() + "}"
}

// Format makes every fmt verb print the redacted form.
func (c Credential) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		_, _ = f.Write([]byte(c.GoString()))
		return
	}
	_, _ = f.Write([]byte(c.String()))
}

func (c Credential) LogValue() slog.Value {
	return slog.StringValue(c.String())
}

// MarshalText redacts, so encoders never see the token.
func (c Credential) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText lets config decoders populate a Credential directly.
func (c *Credential) UnmarshalText(b []byte) error {
	*c = New(string(b))
	return nil
}
