// Package github creates and looks up dotfiles repositories on GitHub.
package github

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// DefaultHostname is the public GitHub host
const DefaultHostname = "github.com"

// NewClient creates a GitHub client authenticated with token for hostname.
// Hosts other than github.com are treated as GitHub Enterprise.
func NewClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if hostname == "" || hostname == DefaultHostname {
		return client, nil
	}

	// GitHub Enterprise serves REST under /api/v3/ and uploads under /api/uploads/
	baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
	}
	uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
	}
	client.BaseURL = baseURL
	client.UploadURL = uploadURL
	return client, nil
}

// NewClientFromEnv creates a client for hostname using Token
func NewClientFromEnv(ctx context.Context, hostname string) (*github.Client, error) {
	token, err := Token(ctx)
	if err != nil {
		return nil, err
	}
	return NewClient(ctx, hostname, token)
}

// Token returns a GitHub token from GITHUB_TOKEN or, failing that, the gh CLI
func Token(ctx context.Context) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	output, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token (set GITHUB_TOKEN or run 'gh auth login'): %w", err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}
	return token, nil
}
