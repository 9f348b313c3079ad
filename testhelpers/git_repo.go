package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo is an ordinary (non-bare) repository used to play another machine
// that pushes to the shared remote.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new repository with a main branch in dir.
func NewGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	repo := &GitRepo{Dir: dir}

	// Configure Git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewBareRepo initializes an empty bare repository with main as its HEAD.
func NewBareRepo(dir string) error {
	cmd := exec.Command("git", "init", "--bare", "--initial-branch=main", dir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to init bare repo: %w: %s", err, out)
	}
	return nil
}

// RunGitCommand executes a git command in the repository directory.
func (r *GitRepo) RunGitCommand(args ...string) error {
	_, err := r.RunGitCommandAndGetOutput(args...)
	return err
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
// Uses GIT_CONFIG_GLOBAL=/dev/null so the developer's config cannot leak into tests.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output)), nil
}

// WriteFile writes content to a path relative to the repository root.
func (r *GitRepo) WriteFile(name, content string) error {
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// CommitFiles writes every file, stages them and commits with message.
func (r *GitRepo) CommitFiles(files map[string]string, message string) error {
	for name, content := range files {
		if err := r.WriteFile(name, content); err != nil {
			return err
		}
		if err := r.RunGitCommand("add", "--", name); err != nil {
			return err
		}
	}
	return r.RunGitCommand("commit", "--allow-empty", "-m", message)
}

// CreateBranch creates and checks out a new branch.
func (r *GitRepo) CreateBranch(name string) error {
	return r.RunGitCommand("checkout", "-b", name)
}

// Checkout switches to an existing branch.
func (r *GitRepo) Checkout(name string) error {
	return r.RunGitCommand("checkout", name)
}

// Push pushes branch to origin.
func (r *GitRepo) Push(branch string) error {
	return r.RunGitCommand("push", "origin", branch)
}

// CurrentBranch returns the checked-out branch name.
func (r *GitRepo) CurrentBranch() (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", "--abbrev-ref", "HEAD")
}
