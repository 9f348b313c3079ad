package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/testhelpers"
)

// withWorkProfile adds a "work" branch on the remote with a different bashrc
func withWorkProfile(t *testing.T, scene *testhelpers.Scene) {
	t.Helper()

	require.NoError(t, scene.Upstream.RunGitCommand("pull", "origin", "main"))
	require.NoError(t, scene.Upstream.CreateBranch("work"))
	require.NoError(t, scene.Upstream.CommitFiles(map[string]string{".bashrc": "export EDITOR=code\n"}, "Work bashrc"))
	require.NoError(t, scene.Upstream.Push("work"))
}

func TestSwitchBranch(t *testing.T) {
	ctx := context.Background()

	t.Run("checks out a branch that only exists on the remote", func(t *testing.T) {
		scene, eng := newSyncedScene(t)
		withWorkProfile(t, scene)
		require.NoError(t, scene.NewStore().Fetch(ctx))

		require.NoError(t, eng.SwitchBranch(ctx, "work", false))
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", "export EDITOR=code\n")

		head, ok := scene.NewStore().HeadBranch()
		require.True(t, ok)
		require.Equal(t, "work", head)
	})

	t.Run("refuses to overwrite local edits without force", func(t *testing.T) {
		scene, eng := newSyncedScene(t)
		withWorkProfile(t, scene)
		require.NoError(t, scene.NewStore().Fetch(ctx))
		require.NoError(t, scene.WriteHome(".bashrc", "unsaved\n"))

		require.Error(t, eng.SwitchBranch(ctx, "work", false))
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", "unsaved\n")

		require.NoError(t, eng.SwitchBranch(ctx, "work", true))
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", "export EDITOR=code\n")
	})

	t.Run("reports unknown branches", func(t *testing.T) {
		_, eng := newSyncedScene(t)

		err := eng.SwitchBranch(ctx, "laptop", false)
		require.ErrorIs(t, err, freckleerrors.ErrBranchNotFound)
	})
}

func TestCompareBranches(t *testing.T) {
	ctx := context.Background()
	scene, eng := newSyncedScene(t)
	withWorkProfile(t, scene)
	require.NoError(t, scene.NewStore().Fetch(ctx))

	stat, err := eng.CompareBranches(ctx, "main", "work")
	require.NoError(t, err)
	require.Contains(t, stat, ".bashrc")
	require.Contains(t, stat, "1 file changed")

	_, err = eng.CompareBranches(ctx, "main", "laptop")
	require.ErrorIs(t, err, freckleerrors.ErrBranchNotFound)
}

func TestBranchFile(t *testing.T) {
	ctx := context.Background()
	scene, eng := newSyncedScene(t)
	withWorkProfile(t, scene)
	require.NoError(t, scene.NewStore().Fetch(ctx))

	content, ok, err := eng.BranchFile("work", ".bashrc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "export EDITOR=code\n", content)

	content, ok, err = eng.BranchFile("main", ".config/nvim/init.lua")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, dotfiles[".config/nvim/init.lua"], content)

	_, ok, err = eng.BranchFile("main", ".zshrc")
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = eng.BranchFile("laptop", ".bashrc")
	require.ErrorIs(t, err, freckleerrors.ErrBranchNotFound)
}
