package release

import "fmt"

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// Release is the subset of a GitHub release snowdrop uses.
type Release struct {
	ID      int64
	Name    string // may be empty
	TagName string
	Assets  []Asset
}

// DisplayName is the release name, falling back to the tag.
func (r Release) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	if r.TagName != "" {
		return r.TagName
	}
	return "(version unspecified)"
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	ID          int64
	Name        string
	Size        int64
	DownloadURL string
}
