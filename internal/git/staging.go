package git

import (
	"context"
	"fmt"
)

// StageTracked stages modifications and deletions of the given paths.
// Paths git does not already track are left alone.
func (s *Store) StageTracked(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "-u", "--"}, paths...)
	if _, err := s.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// AddPaths starts tracking the given work-tree paths
func (s *Store) AddPaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	if _, err := s.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}
	return nil
}

// RemovePaths stops tracking the given paths. Unless deleteFiles is set the
// files stay in the work tree.
func (s *Store) RemovePaths(ctx context.Context, paths []string, deleteFiles bool) error {
	if len(paths) == 0 {
		return nil
	}
	args := []string{"rm", "-r"}
	if !deleteFiles {
		args = append(args, "--cached")
	}
	args = append(args, "--")
	args = append(args, paths...)
	if _, err := s.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to remove files: %w", err)
	}
	return nil
}
