package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/snowdrop-pm/snowdrop/internal/index"
	"github.com/snowdrop-pm/snowdrop/internal/release"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	matchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
)

// suggestionError attaches similar package names to a not-found error.
type suggestionError struct {
	err         error
	suggestions []string
}

func (e *suggestionError) Error() string {
	return e.err.Error()
}

func (e *suggestionError) Unwrap() error {
	return e.err
}

func hintFor(err error) string {
	var sugg *suggestionError
	var ghErr *release.GitHubReleaseError

	switch {
	case errors.Is(err, index.ErrProtocolVersionMismatch):
		return "Try updating Snowdrop."
	case errors.Is(err, release.ErrNoPat):
		return "Run `snowdrop auth` to set a GitHub PAT."
	case errors.As(err, &sugg) && len(sugg.suggestions) > 0:
		return "Did you mean: " + strings.Join(sugg.suggestions, ", ") + "?"
	case errors.As(err, &ghErr) && ghErr.IsRateLimited():
		return "GitHub rate limit reached, try again later."
	case errors.As(err, &ghErr) && ghErr.IsNotFound():
		return "The package repository has no published release."
	}
	return ""
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("Error:"), err)
	if hint := hintFor(err); hint != "" {
		fmt.Fprintf(w, "  %s\n", hintStyle.Render(hint))
	}
}
