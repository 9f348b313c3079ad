package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	freckleerrors "freckle.dev/freckle/internal/errors"
)

// Store is the metadata store of a dotfiles repository: a bare git directory
// paired with the home directory as its work tree.
type Store struct {
	gitDir    string
	workTree  string
	remoteURL string
	runner    *CommandRunner
	logger    *slog.Logger
}

// NewStore creates a Store for the given metadata directory, work tree and remote.
// A nil logger discards log output.
func NewStore(gitDir, workTree, remoteURL string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		gitDir:    gitDir,
		workTree:  workTree,
		remoteURL: remoteURL,
		runner:    NewCommandRunner(workTree),
		logger:    logger,
	}
}

// GitDir returns the metadata store directory
func (s *Store) GitDir() string {
	return s.gitDir
}

// WorkTree returns the work tree the store checks files out into
func (s *Store) WorkTree() string {
	return s.workTree
}

// RemoteURL returns the configured remote repository URL
func (s *Store) RemoteURL() string {
	return s.remoteURL
}

// Exists reports whether the metadata store has been created
func (s *Store) Exists() bool {
	info, err := os.Stat(filepath.Join(s.gitDir, "HEAD"))
	return err == nil && !info.IsDir()
}

// run executes a git command against the store and its work tree
func (s *Store) run(ctx context.Context, args ...string) (string, error) {
	return s.runner.Run(ctx, s.withWorkTree(args)...)
}

// runBare executes a git command that only needs the metadata store
func (s *Store) runBare(ctx context.Context, args ...string) (string, error) {
	return s.runner.Run(ctx, s.bareArgs(args)...)
}

// runNetwork executes a git command that talks to the remote, bounded by timeout
func (s *Store) runNetwork(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.runner.RunWithEnv(ctx, networkEnv, s.bareArgs(args)...)
}

func (s *Store) withWorkTree(args []string) []string {
	return append([]string{"--git-dir", s.gitDir, "--work-tree", s.workTree}, args...)
}

func (s *Store) bareArgs(args []string) []string {
	return append([]string{"--git-dir", s.gitDir}, args...)
}

// CloneBare clones the remote into the metadata store as a bare repository
func (s *Store) CloneBare(ctx context.Context) error {
	if s.remoteURL == "" {
		return fmt.Errorf("no remote repository URL configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.gitDir), 0750); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", s.gitDir, err)
	}

	ctx, cancel := context.WithTimeout(ctx, CloneTimeout)
	defer cancel()
	if _, err := s.runner.RunWithEnv(ctx, networkEnv, "clone", "--bare", s.remoteURL, s.gitDir); err != nil {
		return freckleerrors.NewNetworkError("clone of "+s.remoteURL, err)
	}
	return nil
}

// InitBare creates an empty bare metadata store whose HEAD points at initialBranch
func (s *Store) InitBare(ctx context.Context, initialBranch string) error {
	if err := os.MkdirAll(filepath.Dir(s.gitDir), 0750); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", s.gitDir, err)
	}
	if _, err := s.runner.Run(ctx, "init", "--bare", "--initial-branch="+initialBranch, s.gitDir); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", s.gitDir, err)
	}
	return s.HideUntrackedFiles(ctx)
}

// HideUntrackedFiles stops status output from listing every file under the work tree
func (s *Store) HideUntrackedFiles(ctx context.Context) error {
	return s.SetConfig(ctx, "status.showUntrackedFiles", "no")
}

// SetConfig sets a local config value in the store
func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	if _, err := s.runBare(ctx, "config", "--local", key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
