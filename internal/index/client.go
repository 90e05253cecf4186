// Package index talks to a Snowdrop package index.
//
// An index is a static file tree served over HTTP:
//
//	proto_version           protocol version, plain text
//	names.json              every package name, a JSON array
//	packages/{name}.json    package metadata
//
// New refuses to return a client unless the index speaks
// CurrentProtocolVersion.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/snowdrop-pm/snowdrop/internal/log"
	"github.com/snowdrop-pm/snowdrop/internal/secret"
)

const (
	CurrentProtocolVersion uint8 = 3

	// LibraryVersion is reported in the User-Agent.
	LibraryVersion = "0.3.0"

	protoVersionFile = "proto_version"
	namesFile        = "names.json"
	packagesDir      = "packages"

	// maxBodySize bounds every index response.
	maxBodySize = 4 << 20
)

type Client struct {
	index       string
	httpClient  *http.Client
	credential  secret.Credential
	userVersion string
	metadata    *lru.Cache[string, PackageMetadata]
}

type Option func(*Client) error

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) error {
		if c == nil {
			return fmt.Errorf("nil http client")
		}
		cl.httpClient = c
		return nil
	}
}

// WithCredential sets the token sent to the index and handed to release
// lookups.
func WithCredential(cred secret.Credential) Option {
	return func(cl *Client) error {
		cl.credential = cred
		return nil
	}
}

// WithUserVersion sets the CLI version reported in the User-Agent.
func WithUserVersion(v string) Option {
	return func(cl *Client) error {
		cl.userVersion = v
		return nil
	}
}

// WithMetadataCache keeps up to size decoded package documents in memory.
func WithMetadataCache(size int) Option {
	return func(cl *Client) error {
		cache, err := lru.New[string, PackageMetadata](size)
		if err != nil {
			return fmt.Errorf("failed to create metadata cache: %w", err)
		}
		cl.metadata = cache
		return nil
	}
}

// New connects to the index at baseURL and checks its protocol version.
func New(ctx context.Context, baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid index URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid index URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		index:       strings.TrimRight(u.String(), "/"),
		httpClient:  http.DefaultClient,
		userVersion: "unknown",
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.handshake(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) handshake(ctx context.Context) error {
	endpoint := c.endpoint(protoVersionFile)
	data, err := c.fetch(ctx, endpoint, false)
	if err != nil {
		return err
	}

	raw := strings.TrimSpace(string(data))
	version, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		if len(raw) > 32 {
			raw = raw[:32] + "..."
		}
		return &ProtocolVersionParseError{Raw: raw, Err: err}
	}
	log.Debug("Parsed protocol version", "index", c.index, "version", version)

	if uint8(version) != CurrentProtocolVersion {
		log.Debug("Protocol version mismatch, bailing out",
			"client", CurrentProtocolVersion, "index", version)
		return &ProtocolVersionMismatchError{
			Expected: CurrentProtocolVersion,
			Actual:   uint8(version),
		}
	}

	return nil
}

// Index returns the index base URL without a trailing slash.
func (c *Client) Index() string {
	return c.index
}

func (c *Client) Credential() secret.Credential {
	return c.credential
}

// UserAgent is sent with every index request.
func (c *Client) UserAgent() string {
	return fmt.Sprintf("SnowdropIndexClient/%s SnowdropCLI/%s", LibraryVersion, c.userVersion)
}

// GetPackage fetches the metadata for name. It needs a credential and fails
// with ErrNoPat before any request when there is none.
func (c *Client) GetPackage(ctx context.Context, name string) (PackageMetadata, error) {
	if !c.credential.IsSet() {
		return PackageMetadata{}, ErrNoPat
	}

	if c.metadata != nil {
		if m, ok := c.metadata.Get(name); ok {
			log.Debug("Package metadata served from cache", "package", name)
			return m, nil
		}
	}

	endpoint := c.endpoint(packagesDir, url.PathEscape(name)+".json")
	log.Debug("Fetching package metadata", "package", name, "endpoint", endpoint)

	data, err := c.fetch(ctx, endpoint, true)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			log.Debug("The index returned a 404", "package", name)
			return PackageMetadata{}, &PackageNotFoundError{Name: name}
		}
		return PackageMetadata{}, err
	}

	var m PackageMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return PackageMetadata{}, &ParseError{Endpoint: endpoint, Err: err}
	}

	if c.metadata != nil {
		c.metadata.Add(name, m)
	}
	return m, nil
}

// GetNames lists every package in the index. No credential is needed.
func (c *Client) GetNames(ctx context.Context) ([]string, error) {
	endpoint := c.endpoint(namesFile)
	log.Debug("Fetching package names", "endpoint", endpoint)

	data, err := c.fetch(ctx, endpoint, false)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}

	return names, nil
}

func (c *Client) endpoint(parts ...string) string {
	return c.index + "/" + strings.Join(parts, "/")
}

func (c *Client) fetch(ctx context.Context, endpoint string, auth bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &RequestError{Endpoint: endpoint, Err: err}
	}

	req.Header.Set("User-Agent", c.UserAgent())
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.credential.Reveal())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Endpoint: endpoint}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &RequestError{Endpoint: endpoint, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if len(data) > maxBodySize {
		return nil, &RequestError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("%w: response exceeds %s", ErrResponseTooLarge, humanize.IBytes(maxBodySize)),
		}
	}

	return data, nil
}
