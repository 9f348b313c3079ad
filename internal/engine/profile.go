package engine

import (
	"context"
	"fmt"

	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/internal/git"
)

// SwitchBranch checks out another profile's branch. Without force, git
// refuses when local edits or untracked files would be overwritten.
func (e *Engine) SwitchBranch(ctx context.Context, branch string, force bool) error {
	if !e.gw.Exists() {
		return freckleerrors.ErrNotInitialized
	}
	exists, err := e.gw.BranchExists(branch)
	if err != nil {
		return err
	}
	if !exists {
		available, _ := e.gw.AvailableBranches()
		return freckleerrors.NewRepositoryStateError(branch, available, "")
	}

	local, err := e.gw.LocalBranchExists(branch)
	if err != nil {
		return err
	}
	if !local {
		if err := e.gw.CreateTrackingBranch(ctx, branch); err != nil {
			return err
		}
	}
	return e.gw.Checkout(ctx, branch, force)
}

// CompareBranches summarizes the file differences between two branches
func (e *Engine) CompareBranches(ctx context.Context, from, to string) (string, error) {
	if !e.gw.Exists() {
		return "", freckleerrors.ErrNotInitialized
	}
	fromRef, err := e.branchRef(from)
	if err != nil {
		return "", err
	}
	toRef, err := e.branchRef(to)
	if err != nil {
		return "", err
	}
	return e.gw.DiffStat(ctx, fromRef, toRef)
}

// BranchFile returns path as committed on branch. It returns false when the
// branch exists but does not contain path.
func (e *Engine) BranchFile(branch, path string) (string, bool, error) {
	if !e.gw.Exists() {
		return "", false, freckleerrors.ErrNotInitialized
	}
	ref, err := e.branchRef(branch)
	if err != nil {
		return "", false, err
	}
	return e.gw.FileAt(ref, path)
}

// branchRef prefers the local branch and falls back to origin's
func (e *Engine) branchRef(branch string) (string, error) {
	if _, ok := e.gw.CommitInfo(git.LocalRef(branch)); ok {
		return git.LocalRef(branch), nil
	}
	if _, ok := e.gw.CommitInfo(git.RemoteRef(branch)); ok {
		return git.RemoteRef(branch), nil
	}
	available, _ := e.gw.AvailableBranches()
	return "", freckleerrors.NewRepositoryStateError(branch, available, fmt.Sprintf("branch '%s' not found", branch))
}
