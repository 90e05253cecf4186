// Package release fetches the latest published release of a repository from
// GitHub.
package release

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"

	"github.com/snowdrop-pm/snowdrop/internal/log"
	"github.com/snowdrop-pm/snowdrop/internal/secret"
)

// Lookup talks to the GitHub releases API.
type Lookup struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
}

type Option func(*Lookup) error

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Lookup) error {
		l.httpClient = c
		return nil
	}
}

// WithBaseURL points the lookup at another API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(raw string) Option {
	return func(l *Lookup) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
		}
		l.baseURL = u
		return nil
	}
}

func WithUserAgent(ua string) Option {
	return func(l *Lookup) error {
		l.userAgent = ua
		return nil
	}
}

func NewLookup(opts ...Option) (*Lookup, error) {
	l := &Lookup{}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Lookup) client(cred secret.Credential) *github.Client {
	c := github.NewClient(l.httpClient).WithAuthToken(cred.Reveal())
	if l.baseURL != nil {
		c.BaseURL = l.baseURL
	}
	if l.userAgent != "" {
		c.UserAgent = l.userAgent
	}
	return c
}

// GetLatestRelease fetches the latest published release of repo. Assets keep
// the order the host returned them in.
func (l *Lookup) GetLatestRelease(ctx context.Context, repo Repo, cred secret.Credential) (Release, error) {
	if !cred.IsSet() {
		return Release{}, ErrNoPat
	}

	log.Debug("Fetching latest release", "repo", repo.String())

	rel, _, err := l.client(cred).Repositories.GetLatestRelease(ctx, repo.Owner, repo.Name)
	if err != nil {
		return Release{}, &GitHubReleaseError{Repo: repo, Err: err}
	}

	out := Release{
		ID:      rel.GetID(),
		Name:    rel.GetName(),
		TagName: rel.GetTagName(),
		Assets:  make([]Asset, 0, len(rel.Assets)),
	}
	for _, a := range rel.Assets {
		out.Assets = append(out.Assets, Asset{
			ID:          a.GetID(),
			Name:        a.GetName(),
			Size:        int64(a.GetSize()),
			DownloadURL: a.GetBrowserDownloadURL(),
		})
	}

	log.Debug("Fetched latest release", "repo", repo.String(), "tag", out.TagName, "assets", len(out.Assets))
	return out, nil
}
