package git

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	freckleerrors "freckle.dev/freckle/internal/errors"
)

// nothingToCommitMarkers are the phrases git prints when a commit records nothing
var nothingToCommitMarkers = []string{
	"nothing to commit",
	"nothing added to commit",
	"no changes added to commit",
}

// Commit records the staged changes. It returns ErrNothingToCommit when
// git reports there was nothing to record.
func (s *Store) Commit(ctx context.Context, message string, allowEmpty bool) error {
	args := []string{"commit", "-m", message}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}

	_, err := s.run(ctx, args...)
	if err == nil {
		return nil
	}

	var gitErr *freckleerrors.GitCommandError
	if errors.As(err, &gitErr) {
		output := gitErr.Output()
		for _, marker := range nothingToCommitMarkers {
			if strings.Contains(output, marker) {
				return freckleerrors.ErrNothingToCommit
			}
		}
	}
	return fmt.Errorf("failed to commit: %w", err)
}

// AheadBehind counts the commits local has that remote lacks and vice versa
func (s *Store) AheadBehind(ctx context.Context, local, remote string) (int, int, error) {
	output, err := s.runBare(ctx, "rev-list", "--count", "--left-right", local+"..."+remote)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compare %s with %s: %w", local, remote, err)
	}

	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", output)
	}
	ahead, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q: %w", output, err)
	}
	behind, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q: %w", output, err)
	}
	return ahead, behind, nil
}

// MergeBase returns the best common ancestor of a and b, or false when the
// two histories share no commit.
func (s *Store) MergeBase(ctx context.Context, a, b string) (string, bool, error) {
	sha, err := s.runBare(ctx, "merge-base", a, b)
	if err != nil {
		if freckleerrors.ExitCode(err) == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to find merge base of %s and %s: %w", a, b, err)
	}
	return sha, true, nil
}

// Log returns the last n commits of ref, one per line when oneline is set
func (s *Store) Log(ctx context.Context, ref string, n int, oneline bool) (string, error) {
	args := []string{"log", "-n", strconv.Itoa(n)}
	if oneline {
		args = append(args, "--oneline")
	} else {
		args = append(args, "--format=%h %ad %s", "--date=short")
	}
	args = append(args, ref, "--")

	output, err := s.runBare(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to read log of %s: %w", ref, err)
	}
	return output, nil
}
