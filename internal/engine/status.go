package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"freckle.dev/freckle/internal/git"
)

// StatusOptions configures DetailedStatus
type StatusOptions struct {
	// Offline skips the fetch and reports against the last known remote state
	Offline bool
}

// DetailedStatus compares the work tree and local branch with the remote.
// A failed fetch is recorded in the report rather than returned.
func (e *Engine) DetailedStatus(ctx context.Context, opts StatusOptions) (SyncReport, error) {
	if !e.gw.Exists() {
		return SyncReport{Initialized: false}, nil
	}

	report := SyncReport{Initialized: true}
	if !opts.Offline {
		if err := e.gw.Fetch(ctx); err != nil {
			e.logger.Warn("fetch failed, using last known remote state", "error", err)
			report.FetchFailed = true
		}
	}

	report.Branch = e.ResolveBranch()
	branch := report.Branch.Effective
	report.EffectiveBranch = branch

	report.ChangedFiles = []string{}
	if base, ok := e.diffBase(branch); ok {
		changed, err := e.gw.ChangedFiles(ctx, base)
		if err != nil {
			return SyncReport{}, err
		}
		report.ChangedFiles = changed
	}

	local, hasLocal := e.gw.CommitInfo(git.LocalRef(branch))
	remote, hasRemote := e.gw.CommitInfo(git.RemoteRef(branch))
	report.LocalCommit = local
	report.RemoteCommit = remote

	if !hasLocal {
		return report, nil
	}
	if !hasRemote {
		report.RemoteBranchMissing = true
		return report, nil
	}

	if _, related, err := e.gw.MergeBase(ctx, git.LocalRef(branch), git.RemoteRef(branch)); err != nil {
		return SyncReport{}, err
	} else if !related {
		e.logger.Warn("local and remote history share no commit", "branch", branch)
		report.HistoryUnrelated = true
		return report, nil
	}

	ahead, behind, err := e.gw.AheadBehind(ctx, git.LocalRef(branch), git.RemoteRef(branch))
	if err != nil {
		return SyncReport{}, err
	}
	report.AheadCount = ahead
	report.BehindCount = behind
	return report, nil
}

// FileStatus reports the sync state of one path, given relative to the work
// tree or as an absolute path inside it. It never returns an error; problems
// are reported as FileError.
func (e *Engine) FileStatus(ctx context.Context, path string) FileSyncStatus {
	if !e.gw.Exists() {
		return FileNotInitialized
	}

	rel, err := e.RelativePath(path)
	if err != nil {
		return FileError
	}

	branch := e.ResolveBranch().Effective
	tracked, err := e.gw.TrackedFiles(ctx, branch)
	if err != nil {
		return FileError
	}
	isTracked := slices.Contains(tracked, rel)
	if !isTracked {
		// Still tracked here when the remote dropped it or it is not pushed yet
		indexed, err := e.gw.IndexFiles(ctx)
		if err != nil {
			return FileError
		}
		isTracked = slices.Contains(indexed, rel)
	}

	if _, err := os.Lstat(filepath.Join(e.coords.WorkTree, rel)); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return FileError
		}
		if isTracked {
			return FileMissing
		}
		return FileNotFound
	}
	if !isTracked {
		return FileUntracked
	}

	base, ok := e.diffBase(branch)
	if !ok {
		return FileError
	}
	modified, err := e.gw.DiffQuiet(ctx, rel, base)
	if err != nil {
		return FileError
	}
	if modified {
		return FileModified
	}

	// Without a remote branch the file cannot be behind
	if _, ok := e.gw.CommitInfo(git.RemoteRef(branch)); !ok {
		return FileUpToDate
	}

	// Compare the work tree with the remote, then the local head with the remote
	differsFromRemote, err := e.gw.DiffQuiet(ctx, rel, git.RemoteRef(branch))
	if err != nil {
		return FileError
	}
	if !differsFromRemote {
		return FileUpToDate
	}
	headDiffers, err := e.gw.DiffQuiet(ctx, rel, base, git.RemoteRef(branch))
	if err != nil {
		return FileError
	}
	if headDiffers {
		return FileBehind
	}
	return FileUpToDate
}

// RelativePath converts path to a slash-separated path relative to the work
// tree. Relative inputs are taken relative to the work tree, never to the
// process working directory.
func (e *Engine) RelativePath(path string) (string, error) {
	workTree := filepath.Clean(e.coords.WorkTree)
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(workTree, abs)
	}
	rel, err := filepath.Rel(workTree, filepath.Clean(abs))
	if err != nil {
		return "", fmt.Errorf("failed to relate %s to %s: %w", path, workTree, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not inside %s", path, workTree)
	}
	return filepath.ToSlash(rel), nil
}
