package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	freckleerrors "freckle.dev/freckle/internal/errors"
)

const (
	// DefaultCommandTimeout is the default timeout for local git commands
	DefaultCommandTimeout = 5 * time.Minute

	// NetworkTimeout bounds fetch and push
	NetworkTimeout = 60 * time.Second

	// CloneTimeout bounds the initial bare clone
	CloneTimeout = 120 * time.Second
)

// localeEnv keeps git's messages in English; Commit matches on them
var localeEnv = []string{"LC_ALL=C", "LANGUAGE="}

// networkEnv keeps git from blocking on a credential prompt
var networkEnv = []string{"GIT_TERMINAL_PROMPT=0"}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, nil, true, args...)
}

// RunRaw executes a git command and returns the output untouched
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, nil, false, args...)
}

// RunWithEnv executes a git command with extra environment variables
func (r *CommandRunner) RunWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	return r.runInternal(ctx, env, true, args...)
}

func (r *CommandRunner) runInternal(ctx context.Context, env []string, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	cmd.Env = append(append(os.Environ(), localeEnv...), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", freckleerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), -1, ctx.Err())
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", freckleerrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), exitCode, err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}

// splitNul splits -z output into paths, dropping the trailing empty entry
func splitNul(output string) []string {
	paths := []string{}
	for _, p := range strings.Split(output, "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
