package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/internal/git"
)

// CheckoutPlan describes what checking out the effective branch would do
type CheckoutPlan struct {
	Branch BranchResolution
	// Files are the tracked files that will be written into the work tree
	Files []string
	// Collisions are existing work-tree paths that must be backed up first
	Collisions []string
}

// SetupResult describes a completed first-time setup
type SetupResult struct {
	CheckoutPlan
	// BackupDir holds the moved collisions; empty when nothing was moved
	BackupDir string
}

// PlanCheckout resolves the branch and finds the tracked files that collide
// with existing work-tree entries, without changing anything.
func (e *Engine) PlanCheckout(ctx context.Context) (CheckoutPlan, error) {
	if !e.gw.Exists() {
		return CheckoutPlan{}, freckleerrors.ErrNotInitialized
	}

	res := e.ResolveBranch()
	if !res.Found() {
		return CheckoutPlan{}, freckleerrors.NewRepositoryStateError(res.Configured, res.Available, "")
	}

	files, err := e.gw.TrackedFiles(ctx, res.Effective)
	if err != nil {
		return CheckoutPlan{}, err
	}
	collisions, err := e.backupStrategy().Plan(files)
	if err != nil {
		return CheckoutPlan{}, err
	}
	return CheckoutPlan{Branch: res, Files: files, Collisions: collisions}, nil
}

// Setup clones the remote into a new metadata store and checks the effective
// branch out into the work tree. Existing entries that collide with tracked
// files are moved to a backup directory before the forced checkout, so no
// pre-existing file is lost. If any step after the clone fails the store is
// removed again, so a later Setup can retry; a backup directory is kept and
// named in the error.
func (e *Engine) Setup(ctx context.Context) (SetupResult, error) {
	if e.gw.Exists() {
		return SetupResult{}, freckleerrors.ErrAlreadyInitialized
	}
	if err := e.gw.CloneBare(ctx); err != nil {
		return SetupResult{}, err
	}

	result, err := e.checkoutFresh(ctx)
	if err != nil {
		if rmErr := os.RemoveAll(e.gw.GitDir()); rmErr != nil {
			e.logger.Error("failed to remove partial metadata store", "dir", e.gw.GitDir(), "error", rmErr)
			return result, errors.Join(err, fmt.Errorf("failed to remove partial metadata store %s: %w", e.gw.GitDir(), rmErr))
		}
		e.logger.Debug("removed partial metadata store", "dir", e.gw.GitDir())
		return result, err
	}
	return result, nil
}

// checkoutFresh runs the steps of Setup that follow the clone
func (e *Engine) checkoutFresh(ctx context.Context) (SetupResult, error) {
	res := e.ResolveBranch()
	if !res.Found() {
		return SetupResult{}, freckleerrors.NewRepositoryStateError(res.Configured, res.Available, "")
	}
	if res.Message != "" {
		e.logger.Warn(res.Message)
	}

	if err := e.gw.SetupBranchTracking(ctx, res.Effective); err != nil {
		return SetupResult{}, err
	}
	if err := e.gw.HideUntrackedFiles(ctx); err != nil {
		return SetupResult{}, err
	}

	plan, err := e.PlanCheckout(ctx)
	if err != nil {
		return SetupResult{}, err
	}
	result := SetupResult{CheckoutPlan: plan}

	backupDir, err := e.backupStrategy().Apply(plan.Collisions)
	result.BackupDir = backupDir
	if err != nil {
		return result, freckleerrors.NewCheckoutConflictError(plan.Branch.Effective, backupDir, err)
	}
	if backupDir != "" {
		e.logger.Info("moved existing files to backup", "dir", backupDir, "count", len(plan.Collisions))
	}

	if err := e.gw.Checkout(ctx, plan.Branch.Effective, true); err != nil {
		return result, freckleerrors.NewCheckoutConflictError(plan.Branch.Effective, backupDir, err)
	}
	return result, nil
}

// ForceCheckout makes the work tree and the effective branch match the
// remote, discarding local commits and tracked-file edits. Callers capture a
// restore point from ChangedFiles first if they want one.
func (e *Engine) ForceCheckout(ctx context.Context) (BranchResolution, error) {
	if !e.gw.Exists() {
		return BranchResolution{}, freckleerrors.ErrNotInitialized
	}
	if err := e.gw.Fetch(ctx); err != nil {
		e.logger.Warn("fetch failed, resetting to last known remote state", "error", err)
	}

	res := e.ResolveBranch()
	if !res.Found() {
		return res, freckleerrors.NewRepositoryStateError(res.Configured, res.Available, "")
	}
	branch := res.Effective
	if _, ok := e.gw.CommitInfo(git.RemoteRef(branch)); !ok {
		return res, freckleerrors.NewRepositoryStateError(branch, res.Available,
			fmt.Sprintf("remote branch origin/%s not found", branch))
	}

	if err := e.gw.PointHead(ctx, branch); err != nil {
		return res, err
	}
	if err := e.gw.HardReset(ctx, git.RemoteRef(branch)); err != nil {
		return res, err
	}
	return res, nil
}

func (e *Engine) backupStrategy() BackupStrategy {
	return BackupStrategy{WorkTree: e.coords.WorkTree, Now: e.now}
}
