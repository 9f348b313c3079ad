package engine

import (
	"context"
	"os"
	"path/filepath"

	freckleerrors "freckle.dev/freckle/internal/errors"
)

const (
	initialCommitMessage = "Initial dotfiles commit"
	emptyCommitMessage   = "Initialize dotfiles repository"
)

// CreateResult describes a newly created repository
type CreateResult struct {
	Branch  string
	Added   []string
	Skipped []string
	// Pushed is false when there is no remote or the push failed
	Pushed    bool
	PushError string
}

// CreateNew initializes an empty metadata store on the configured branch,
// tracks the given files that exist, records an initial commit and, when a
// remote is configured, pushes it. A failed push is reported, not returned.
func (e *Engine) CreateNew(ctx context.Context, files []string) (CreateResult, error) {
	if e.gw.Exists() {
		return CreateResult{}, freckleerrors.ErrAlreadyInitialized
	}

	branch := e.coords.Branch
	result := CreateResult{Branch: branch}

	if err := e.gw.InitBare(ctx, branch); err != nil {
		return result, err
	}
	if e.coords.RepoURL != "" {
		if err := e.gw.AddRemote(ctx, e.coords.RepoURL); err != nil {
			return result, err
		}
	}

	result.Added, result.Skipped = e.existingFiles(files)
	if err := e.gw.AddPaths(ctx, result.Added); err != nil {
		return result, err
	}

	message, allowEmpty := initialCommitMessage, false
	if len(result.Added) == 0 {
		message, allowEmpty = emptyCommitMessage, true
	}
	if err := e.gw.Commit(ctx, message, allowEmpty); err != nil {
		return result, err
	}

	if e.coords.RepoURL == "" {
		return result, nil
	}
	if err := e.gw.Push(ctx, branch, true); err != nil {
		e.logger.Warn("initial push failed", "branch", branch, "error", err)
		result.PushError = err.Error()
		return result, nil
	}
	result.Pushed = true
	return result, nil
}

// existingFiles splits paths into work-tree relative paths that exist and
// the inputs that are missing or outside the work tree
func (e *Engine) existingFiles(paths []string) ([]string, []string) {
	added := []string{}
	skipped := []string{}
	for _, p := range paths {
		rel, err := e.RelativePath(p)
		if err != nil {
			skipped = append(skipped, p)
			continue
		}
		if _, err := os.Lstat(filepath.Join(e.coords.WorkTree, filepath.FromSlash(rel))); err != nil {
			skipped = append(skipped, p)
			continue
		}
		added = append(added, rel)
	}
	return added, skipped
}
