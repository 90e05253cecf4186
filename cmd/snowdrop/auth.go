package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/snowdrop-pm/snowdrop/internal/config"
	"github.com/snowdrop-pm/snowdrop/internal/log"
	"github.com/snowdrop-pm/snowdrop/internal/secret"
)

const newTokenURL = "https://github.com/settings/personal-access-tokens/new"

// Classic PATs, fine-grained PATs and GitHub Actions tokens.
var patPattern = regexp.MustCompile(`^(ghp_[a-zA-Z0-9]{36}|github_pat_[a-zA-Z0-9]{22}_[a-zA-Z0-9]{59}|v[0-9]\.[0-9a-f]{40})$`)

var errInvalidPAT = errors.New("invalid PAT token")

var authCmd = &cli.Command{
	Name:  "auth",
	Usage: "Set a GitHub PAT for authentication",
	Description: `Stores a GitHub personal access token in pat.toml, next to config.toml.

When standard input is not a terminal the token is read from its first line,
so it can be piped in:

  echo "$GITHUB_TOKEN" | snowdrop auth`,
	Action: authAction,
}

func validatePAT(token string) error {
	if !patPattern.MatchString(token) {
		return errInvalidPAT
	}
	return nil
}

func authAction(ctx context.Context, c *cli.Command) error {
	d, err := dirsFrom(ctx)
	if err != nil {
		return err
	}

	root := c.Root()
	var token string
	if isTerminal(root.Reader) {
		fmt.Fprintf(root.Writer, " Please enter a GitHub PAT or a GitHub Actions temporal token. You can make one at %s %s\n",
			matchStyle.Render(newTokenURL), hintStyle.Render("(no permissions are required!)"))
		token, err = readPAT(ctx, root.Reader, root.Writer)
	} else {
		token, err = readPATLine(root.Reader)
	}
	if err != nil {
		return err
	}

	cred := secret.New(token)
	defer cred.Destroy()

	if err := config.SavePAT(d, cred); err != nil {
		return err
	}

	log.Debug("Saved PAT", "path", d.PATFile(), "pat", cred)
	fmt.Fprintf(root.Writer, "%s PAT saved to %s\n", successStyle.Render("✔"), d.PATFile())
	return nil
}

func readPATLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading PAT: %w", err)
	}

	token := strings.TrimSpace(line)
	if err := validatePAT(token); err != nil {
		return "", err
	}
	return token, nil
}
