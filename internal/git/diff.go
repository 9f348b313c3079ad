package git

import (
	"context"
	"fmt"

	freckleerrors "freckle.dev/freckle/internal/errors"
)

// TrackedFiles lists the paths in branch's tree, preferring the remote-tracking
// ref over the local one. It returns an empty list when neither ref exists.
func (s *Store) TrackedFiles(ctx context.Context, branch string) ([]string, error) {
	for _, ref := range []string{RemoteRef(branch), LocalRef(branch)} {
		if _, ok := s.CommitInfo(ref); !ok {
			continue
		}
		output, err := s.runner.RunRaw(ctx, s.bareArgs([]string{"ls-tree", "-r", "-z", "--name-only", ref})...)
		if err != nil {
			return nil, fmt.Errorf("failed to list files in %s: %w", ref, err)
		}
		return splitNul(output), nil
	}
	return []string{}, nil
}

// ChangedFiles lists tracked paths whose work-tree content differs from ref.
// Deleted files are included.
func (s *Store) ChangedFiles(ctx context.Context, ref string) ([]string, error) {
	output, err := s.runner.RunRaw(ctx, s.withWorkTree([]string{"diff", "--name-only", "-z", ref, "--"})...)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files against %s: %w", ref, err)
	}
	return splitNul(output), nil
}

// DiffQuiet reports whether path differs between the given refs. With one ref
// the work tree is compared against it; with two the refs are compared to
// each other.
func (s *Store) DiffQuiet(ctx context.Context, path string, refs ...string) (bool, error) {
	args := append([]string{"diff", "--quiet"}, refs...)
	args = append(args, "--", path)

	_, err := s.run(ctx, args...)
	if err == nil {
		return false, nil
	}
	if freckleerrors.ExitCode(err) == 1 {
		return true, nil
	}
	return false, fmt.Errorf("failed to diff %s: %w", path, err)
}

// Diff returns the patch between HEAD and the work tree, limited to paths if given
func (s *Store) Diff(ctx context.Context, paths ...string) (string, error) {
	args := append([]string{"diff", "HEAD", "--"}, paths...)
	output, err := s.runner.RunRaw(ctx, s.withWorkTree(args)...)
	if err != nil {
		return "", fmt.Errorf("failed to diff: %w", err)
	}
	return output, nil
}

// DiffStat summarizes the differences between two refs
func (s *Store) DiffStat(ctx context.Context, from, to string) (string, error) {
	output, err := s.runBare(ctx, "diff", "--stat", from, to)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s..%s: %w", from, to, err)
	}
	return output, nil
}

// IndexFiles lists the paths currently recorded in the store's index
func (s *Store) IndexFiles(ctx context.Context) ([]string, error) {
	output, err := s.runner.RunRaw(ctx, s.withWorkTree([]string{"ls-files", "-z"})...)
	if err != nil {
		return nil, fmt.Errorf("failed to list index: %w", err)
	}
	return splitNul(output), nil
}
