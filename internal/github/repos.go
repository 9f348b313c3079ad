package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// Repository is the subset of a GitHub repository freckle needs
type Repository struct {
	Owner    string
	Name     string
	CloneURL string
	SSHURL   string
	HTMLURL  string
	Private  bool
	// Created is false when the repository already existed
	Created bool
}

// CreateOptions describes a repository to create for the authenticated user
type CreateOptions struct {
	Name        string
	Description string
	Private     bool
}

// EnsureRepository creates the repository for the authenticated user, or
// returns the existing one of the same name.
func EnsureRepository(ctx context.Context, client *github.Client, opts CreateOptions) (*Repository, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("repository name is required")
	}

	created, _, err := client.Repositories.Create(ctx, "", &github.Repository{
		Name:        github.String(opts.Name),
		Description: github.String(opts.Description),
		Private:     github.Bool(opts.Private),
	})
	if err == nil {
		repo := toRepository(created)
		repo.Created = true
		return repo, nil
	}
	if !isAlreadyExists(err) {
		return nil, fmt.Errorf("failed to create repository %s: %w", opts.Name, err)
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to look up the authenticated user: %w", err)
	}
	existing, _, err := client.Repositories.Get(ctx, user.GetLogin(), opts.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s/%s: %w", user.GetLogin(), opts.Name, err)
	}
	return toRepository(existing), nil
}

// isAlreadyExists reports whether GitHub rejected a create because the name is taken
func isAlreadyExists(err error) bool {
	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) || errResp.Response == nil {
		return false
	}
	if errResp.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	for _, e := range errResp.Errors {
		if e.Field == "name" && e.Code == "custom" {
			return true
		}
	}
	return false
}

func toRepository(repo *github.Repository) *Repository {
	return &Repository{
		Owner:    repo.GetOwner().GetLogin(),
		Name:     repo.GetName(),
		CloneURL: repo.GetCloneURL(),
		SSHURL:   repo.GetSSHURL(),
		HTMLURL:  repo.GetHTMLURL(),
		Private:  repo.GetPrivate(),
	}
}
