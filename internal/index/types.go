package index

import (
	"encoding/json"
	"fmt"

	"github.com/snowdrop-pm/snowdrop/internal/release"
)

// PackageMetadata is the document served at packages/{name}.json.
type PackageMetadata struct {
	Name       string    `json:"name"`
	PrettyName string    `json:"pretty_name"`
	Repo       [2]string `json:"repo"`
	// NamingScheme is a glob with platform placeholders, see package asset.
	NamingScheme string `json:"naming_scheme"`
}

// ReleaseRepo returns the GitHub repository hosting the package releases.
func (m PackageMetadata) ReleaseRepo() release.Repo {
	return release.Repo{Owner: m.Repo[0], Name: m.Repo[1]}
}

// UnmarshalJSON rejects a repo that is not exactly [owner, name].
func (m *PackageMetadata) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         string   `json:"name"`
		PrettyName   string   `json:"pretty_name"`
		Repo         []string `json:"repo"`
		NamingScheme string   `json:"naming_scheme"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if len(raw.Repo) != 2 {
		return fmt.Errorf("repo must have 2 elements, got %d", len(raw.Repo))
	}
	if raw.Repo[0] == "" || raw.Repo[1] == "" {
		return fmt.Errorf("repo owner and name must not be empty")
	}

	*m = PackageMetadata{
		Name:         raw.Name,
		PrettyName:   raw.PrettyName,
		Repo:         [2]string{raw.Repo[0], raw.Repo[1]},
		NamingScheme: raw.NamingScheme,
	}
	return nil
}
