package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/internal/git"
)

// Stage names the step at which publishing failed
type Stage string

const (
	StageResolving  Stage = "resolving"
	StageStaging    Stage = "staging"
	StageCommitting Stage = "committing"
	StagePushing    Stage = "pushing"
)

// CommitResult is the outcome of CommitAndPush or Push.
// It is exactly one of NoChanges, Committed or Failed.
type CommitResult interface {
	isCommitResult()
}

// NoChanges means there was nothing to record
type NoChanges struct{}

// Committed means a commit exists locally. Pushed reports whether it reached
// the remote; PushError explains why not.
type Committed struct {
	Pushed    bool
	PushError string
}

// Failed means nothing was committed
type Failed struct {
	Stage   Stage
	Message string
}

func (NoChanges) isCommitResult() {}
func (Committed) isCommitResult() {}
func (Failed) isCommitResult()    {}

func (f Failed) Error() string {
	return fmt.Sprintf("%s failed: %s", f.Stage, f.Message)
}

// CommitAndPush stages the tracked files that changed, commits them with
// message and pushes the effective branch. Untracked files are never staged.
// Running it again with no further edits yields NoChanges.
func (e *Engine) CommitAndPush(ctx context.Context, message string) CommitResult {
	branch, failed := e.publishBranch()
	if failed != nil {
		return *failed
	}

	base, ok := e.diffBase(branch)
	if !ok {
		return NoChanges{}
	}
	changed, err := e.gw.ChangedFiles(ctx, base)
	if err != nil {
		return Failed{Stage: StageStaging, Message: err.Error()}
	}
	if len(changed) == 0 {
		return NoChanges{}
	}

	// Paths already dropped from the index are staged removals
	indexed, err := e.gw.IndexFiles(ctx)
	if err != nil {
		return Failed{Stage: StageStaging, Message: err.Error()}
	}
	stage := make([]string, 0, len(changed))
	for _, p := range changed {
		if slices.Contains(indexed, p) {
			stage = append(stage, p)
		}
	}
	if err := e.gw.StageTracked(ctx, stage); err != nil {
		return Failed{Stage: StageStaging, Message: err.Error()}
	}
	if err := e.gw.Commit(ctx, message, false); err != nil {
		if errors.Is(err, freckleerrors.ErrNothingToCommit) {
			return NoChanges{}
		}
		return Failed{Stage: StageCommitting, Message: err.Error()}
	}

	if err := e.gw.Push(ctx, branch, false); err != nil {
		e.logger.Warn("push failed, commit kept locally", "branch", branch, "error", err)
		return Committed{Pushed: false, PushError: err.Error()}
	}
	return Committed{Pushed: true}
}

// Push publishes existing local commits of the effective branch and records
// origin as its upstream.
func (e *Engine) Push(ctx context.Context) CommitResult {
	branch, failed := e.publishBranch()
	if failed != nil {
		return *failed
	}
	if _, ok := e.gw.CommitInfo(git.LocalRef(branch)); !ok {
		return Failed{Stage: StagePushing, Message: fmt.Sprintf("branch '%s' has no commits", branch)}
	}

	if err := e.gw.Push(ctx, branch, true); err != nil {
		return Committed{Pushed: false, PushError: err.Error()}
	}
	return Committed{Pushed: true}
}

// publishBranch resolves the branch to publish and checks HEAD is attached to
// it, so the commit and the push land on the same branch.
func (e *Engine) publishBranch() (string, *Failed) {
	if !e.gw.Exists() {
		return "", &Failed{Stage: StageResolving, Message: freckleerrors.ErrNotInitialized.Error()}
	}
	res := e.ResolveBranch()
	if !res.Found() {
		return "", &Failed{Stage: StageResolving, Message: res.Message}
	}
	// An unborn HEAD still names its branch; only a detached HEAD has none
	head, ok := e.gw.HeadBranch()
	if !ok {
		return "", &Failed{
			Stage:   StageResolving,
			Message: fmt.Sprintf("HEAD is detached; expected it on '%s'", res.Effective),
		}
	}
	if head != res.Effective {
		return "", &Failed{
			Stage:   StageResolving,
			Message: fmt.Sprintf("HEAD is on '%s' but the resolved branch is '%s'", head, res.Effective),
		}
	}
	return res.Effective, nil
}
