// Package errors provides sentinel errors and custom error types for freckle.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotInitialized indicates that the metadata store does not exist yet
	ErrNotInitialized = errors.New("dotfiles repository not initialized")

	// ErrAlreadyInitialized indicates that the metadata store already exists
	ErrAlreadyInitialized = errors.New("dotfiles repository already initialized")

	// ErrBranchNotFound indicates that no usable branch could be resolved
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNothingToCommit indicates that git found nothing to record
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrNetwork indicates that a fetch, push or clone could not reach the remote
	ErrNetwork = errors.New("network operation failed")

	// ErrCheckoutConflict indicates that files in the work tree blocked a checkout
	ErrCheckoutConflict = errors.New("checkout conflict")

	// ErrLocked indicates that another freckle process holds the store lock
	ErrLocked = errors.New("dotfiles repository is locked by another process")
)

// RepositoryStateError represents a store that is not in the state an operation needs,
// for example when no configured or fallback branch exists.
type RepositoryStateError struct {
	Branch    string
	Available []string
	Message   string
}

func (e *RepositoryStateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	available := "(none)"
	if len(e.Available) > 0 {
		available = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("Branch '%s' not found. Available: %s", e.Branch, available)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *RepositoryStateError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewRepositoryStateError creates a new RepositoryStateError
func NewRepositoryStateError(branch string, available []string, message string) *RepositoryStateError {
	return &RepositoryStateError{
		Branch:    branch,
		Available: available,
		Message:   message,
	}
}

// NetworkError represents a failed operation against the remote
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrNetwork
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// CheckoutConflictError represents a forced checkout that still failed after
// colliding files were moved out of the way.
type CheckoutConflictError struct {
	Branch    string
	BackupDir string
	Err       error
}

func (e *CheckoutConflictError) Error() string {
	msg := fmt.Sprintf("checkout of %s failed", e.Branch)
	if e.BackupDir != "" {
		msg += fmt.Sprintf(" (existing files were moved to %s)", e.BackupDir)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *CheckoutConflictError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrCheckoutConflict
func (e *CheckoutConflictError) Is(target error) bool {
	return target == ErrCheckoutConflict
}

// NewCheckoutConflictError creates a new CheckoutConflictError
func NewCheckoutConflictError(branch, backupDir string, err error) *CheckoutConflictError {
	return &CheckoutConflictError{
		Branch:    branch,
		BackupDir: backupDir,
		Err:       err,
	}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(e.Stderr))
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", strings.TrimSpace(e.Stdout))
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// Output returns stderr and stdout combined, which is where git reports
// conditions such as "nothing to commit".
func (e *GitCommandError) Output() string {
	return e.Stdout + "\n" + e.Stderr
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

// ExitCode returns the exit status carried by a GitCommandError in err's chain,
// or -1 when err did not come from a finished git process.
func ExitCode(err error) int {
	var gitErr *GitCommandError
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}
	return -1
}
