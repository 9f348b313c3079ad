package git

import (
	"context"
	"fmt"
)

// SetupBranchTracking makes branch the checked-out branch of the store, pointing
// it at origin/<branch> and recording origin as its upstream. It fetches first;
// if the remote has no such branch a warning is logged and nothing changes.
func (s *Store) SetupBranchTracking(ctx context.Context, branch string) error {
	if err := s.Fetch(ctx); err != nil {
		s.logger.Warn("fetch before branch setup failed", "branch", branch, "error", err)
	}

	exists, err := s.RemoteBranchExists(branch)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Warn("remote branch not found, skipping tracking setup", "branch", branch)
		return nil
	}

	if err := s.CreateTrackingBranch(ctx, branch); err != nil {
		return err
	}
	return s.PointHead(ctx, branch)
}

// CreateTrackingBranch points the local branch at origin/<branch> and records
// origin as its upstream, leaving HEAD and the work tree alone.
func (s *Store) CreateTrackingBranch(ctx context.Context, branch string) error {
	// update-ref instead of "branch -f" so the branch HEAD already names is accepted
	if _, err := s.runBare(ctx, "update-ref", LocalRef(branch), RemoteRef(branch)); err != nil {
		return fmt.Errorf("failed to point %s at %s: %w", branch, RemoteRef(branch), err)
	}
	if err := s.SetConfig(ctx, "branch."+branch+".remote", RemoteName); err != nil {
		return err
	}
	return s.SetConfig(ctx, "branch."+branch+".merge", LocalRef(branch))
}

// PointHead makes HEAD a symbolic ref to branch without touching the work tree
func (s *Store) PointHead(ctx context.Context, branch string) error {
	if _, err := s.runBare(ctx, "symbolic-ref", "HEAD", LocalRef(branch)); err != nil {
		return fmt.Errorf("failed to point HEAD at %s: %w", branch, err)
	}
	return nil
}

// Checkout checks branch out into the work tree. With force, local
// modifications to tracked files and colliding untracked files are overwritten.
func (s *Store) Checkout(ctx context.Context, branch string, force bool) error {
	args := []string{"checkout"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, branch)

	if _, err := s.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branch, err)
	}
	return nil
}
