package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	freckleerrors "freckle.dev/freckle/internal/errors"
)

func TestRepositoryStateError(t *testing.T) {
	t.Run("lists available branches", func(t *testing.T) {
		err := freckleerrors.NewRepositoryStateError("feature", []string{"dev", "prod"}, "")
		require.Equal(t, "Branch 'feature' not found. Available: dev, prod", err.Error())
	})

	t.Run("reports none when nothing is available", func(t *testing.T) {
		err := freckleerrors.NewRepositoryStateError("main", nil, "")
		require.Equal(t, "Branch 'main' not found. Available: (none)", err.Error())
	})

	t.Run("matches ErrBranchNotFound through wrapping", func(t *testing.T) {
		err := fmt.Errorf("setup: %w", freckleerrors.NewRepositoryStateError("main", nil, ""))
		require.ErrorIs(t, err, freckleerrors.ErrBranchNotFound)
	})
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("could not resolve host")
	err := freckleerrors.NewNetworkError("fetch", cause)

	require.ErrorIs(t, err, freckleerrors.ErrNetwork)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "fetch failed")
}

func TestCheckoutConflictError(t *testing.T) {
	err := freckleerrors.NewCheckoutConflictError("main", "/home/u/.dotfiles_backup_20240101_120000", errors.New("boom"))

	require.ErrorIs(t, err, freckleerrors.ErrCheckoutConflict)
	require.Contains(t, err.Error(), ".dotfiles_backup_20240101_120000")
}

func TestExitCode(t *testing.T) {
	gitErr := freckleerrors.NewGitCommandError("git", []string{"diff", "--quiet"}, "", "", 1, errors.New("exit status 1"))

	require.Equal(t, 1, freckleerrors.ExitCode(fmt.Errorf("wrapped: %w", gitErr)))
	require.Equal(t, -1, freckleerrors.ExitCode(errors.New("plain")))
}
