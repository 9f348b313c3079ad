package engine

import (
	"context"

	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/internal/git"
)

// diffBase returns the ref work-tree changes are measured against: the
// effective branch when it exists locally, otherwise HEAD if it resolves.
func (e *Engine) diffBase(branch string) (string, bool) {
	if _, ok := e.gw.CommitInfo(git.LocalRef(branch)); ok {
		return git.LocalRef(branch), true
	}
	if _, ok := e.gw.CommitInfo("HEAD"); ok {
		return "HEAD", true
	}
	return "", false
}

// ChangedFiles lists tracked files whose work-tree content differs from the
// effective branch. Callers snapshot these before a destructive update.
func (e *Engine) ChangedFiles(ctx context.Context) ([]string, error) {
	if !e.gw.Exists() {
		return nil, freckleerrors.ErrNotInitialized
	}
	base, ok := e.diffBase(e.ResolveBranch().Effective)
	if !ok {
		return []string{}, nil
	}
	return e.gw.ChangedFiles(ctx, base)
}

// TrackedFiles lists the files tracked on the effective branch
func (e *Engine) TrackedFiles(ctx context.Context) ([]string, error) {
	if !e.gw.Exists() {
		return nil, freckleerrors.ErrNotInitialized
	}
	return e.gw.TrackedFiles(ctx, e.ResolveBranch().Effective)
}
