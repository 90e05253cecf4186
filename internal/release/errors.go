package release

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

var (
	// ErrNoPat is returned before any request when no credential was given.
	ErrNoPat = errors.New("no GitHub PAT set")
	// ErrGitHubRelease marks every failure talking to the release host.
	ErrGitHubRelease = errors.New("failed to get latest GitHub release")
)

// GitHubReleaseError wraps a release host failure with the repository it
// was for.
type GitHubReleaseError struct {
	Repo Repo
	Err  error
}

func (e *GitHubReleaseError) Error() string {
	return fmt.Sprintf("failed to get latest GitHub release for %s: %v", e.Repo, e.Err)
}

func (e *GitHubReleaseError) Unwrap() []error {
	return []error{ErrGitHubRelease, e.Err}
}

// IsNotFound reports whether the repository or its latest release is missing.
func (e *GitHubReleaseError) IsNotFound() bool {
	var errResp *github.ErrorResponse
	if errors.As(e.Err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited reports whether GitHub rejected the call for rate limiting.
func (e *GitHubReleaseError) IsRateLimited() bool {
	var rl *github.RateLimitError
	if errors.As(e.Err, &rl) {
		return true
	}
	var abuse *github.AbuseRateLimitError
	return errors.As(e.Err, &abuse)
}
