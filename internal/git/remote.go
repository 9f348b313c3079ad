package git

import (
	"context"
	"fmt"
	"strings"

	freckleerrors "freckle.dev/freckle/internal/errors"
)

// DefaultFetchRefspec maps every remote branch to a remote-tracking ref.
// Bare clones do not configure it, so fetch would otherwise leave
// refs/remotes/origin/* empty.
const DefaultFetchRefspec = "+refs/heads/*:refs/remotes/origin/*"

// EnsureFetchRefspec adds DefaultFetchRefspec to remote.origin.fetch if it is missing
func (s *Store) EnsureFetchRefspec(ctx context.Context) error {
	output, err := s.runBare(ctx, "config", "--get-all", "remote."+RemoteName+".fetch")
	if err != nil {
		// Exit status 1 means the key is not set
		if freckleerrors.ExitCode(err) != 1 {
			return fmt.Errorf("failed to read fetch refspecs: %w", err)
		}
		output = ""
	}

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == DefaultFetchRefspec {
			return nil
		}
	}

	if _, err := s.runBare(ctx, "config", "--add", "remote."+RemoteName+".fetch", DefaultFetchRefspec); err != nil {
		return fmt.Errorf("failed to add fetch refspec: %w", err)
	}
	return nil
}

// Fetch updates the remote-tracking refs from origin. A failure is returned as
// a NetworkError; callers treat it as non-fatal and continue on stale refs.
func (s *Store) Fetch(ctx context.Context) error {
	if err := s.EnsureFetchRefspec(ctx); err != nil {
		return freckleerrors.NewNetworkError("fetch", err)
	}
	if _, err := s.runNetwork(ctx, NetworkTimeout, "fetch", RemoteName); err != nil {
		return freckleerrors.NewNetworkError("fetch", err)
	}
	return nil
}

// Push pushes branch to origin, optionally recording it as the upstream
func (s *Store) Push(ctx context.Context, branch string, setUpstream bool) error {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "-u")
	}
	args = append(args, RemoteName, branch)

	if _, err := s.runNetwork(ctx, NetworkTimeout, args...); err != nil {
		return freckleerrors.NewNetworkError("push of "+branch, err)
	}
	return nil
}

// AddRemote registers url as origin and configures its fetch refspec
func (s *Store) AddRemote(ctx context.Context, url string) error {
	if _, err := s.runBare(ctx, "remote", "add", RemoteName, url); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", url, err)
	}
	s.remoteURL = url
	return s.EnsureFetchRefspec(ctx)
}

// ConfiguredRemoteURL returns remote.origin.url as recorded in the store
func (s *Store) ConfiguredRemoteURL(ctx context.Context) (string, error) {
	url, err := s.runBare(ctx, "config", "--get", "remote."+RemoteName+".url")
	if err != nil {
		if freckleerrors.ExitCode(err) == 1 {
			return "", nil
		}
		return "", fmt.Errorf("failed to read remote url: %w", err)
	}
	return url, nil
}
