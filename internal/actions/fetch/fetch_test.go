package fetch_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"freckle.dev/freckle/internal/actions/fetch"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/testhelpers"
)

func setup(t *testing.T) (*testhelpers.Scene, *runtime.Context, *bytes.Buffer) {
	t.Helper()

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.SeedRemote(map[string]string{".bashrc": "export EDITOR=vim\n"}, "Add dotfiles")
	})
	ctx, out := scene.NewContext(t, scene.Config("main"))
	_, err := ctx.Engine.Setup(ctx.Context)
	require.NoError(t, err)
	out.Reset()
	return scene, ctx, out
}

func pushUpstream(t *testing.T, scene *testhelpers.Scene) {
	t.Helper()
	require.NoError(t, scene.Upstream.CommitFiles(map[string]string{".bashrc": "export EDITOR=nano\n"}, "Switch editor"))
	require.NoError(t, scene.Upstream.Push("main"))
}

func TestFetchAction(t *testing.T) {
	t.Run("already up-to-date", func(t *testing.T) {
		_, ctx, out := setup(t)

		require.NoError(t, fetch.Action(ctx, fetch.Options{}))
		require.Contains(t, out.String(), "✓ Already up-to-date with the remote.")
	})

	t.Run("updates home from the remote", func(t *testing.T) {
		scene, ctx, out := setup(t)
		pushUpstream(t, scene)

		require.NoError(t, fetch.Action(ctx, fetch.Options{}))
		require.Contains(t, out.String(), "✓ Fetched latest from the remote.")
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", "export EDITOR=nano\n")
	})

	t.Run("dry run changes nothing", func(t *testing.T) {
		scene, ctx, out := setup(t)
		pushUpstream(t, scene)

		require.NoError(t, fetch.Action(ctx, fetch.Options{DryRun: true}))
		require.Contains(t, out.String(), "Would fetch 1 change(s)")
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", "export EDITOR=vim\n")
	})

	t.Run("refuses to discard local changes", func(t *testing.T) {
		scene, ctx, _ := setup(t)
		pushUpstream(t, scene)
		require.NoError(t, scene.WriteHome(".bashrc", "export EDITOR=emacs\n"))

		require.ErrorIs(t, fetch.Action(ctx, fetch.Options{}), fetch.ErrLocalChanges)
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", "export EDITOR=emacs\n")
	})

	t.Run("force keeps a restore point", func(t *testing.T) {
		scene, ctx, _ := setup(t)
		pushUpstream(t, scene)
		require.NoError(t, scene.WriteHome(".bashrc", "export EDITOR=emacs\n"))

		require.NoError(t, fetch.Action(ctx, fetch.Options{Force: true}))
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", "export EDITOR=nano\n")

		points, err := ctx.RestorePoints.List()
		require.NoError(t, err)
		require.Len(t, points, 1)
		require.Equal(t, fetch.RestoreReason, points[0].Reason)
		require.Equal(t, []string{".bashrc"}, points[0].Files)
	})

	t.Run("force discards edits without remote changes", func(t *testing.T) {
		scene, ctx, _ := setup(t)
		require.NoError(t, scene.WriteHome(".bashrc", "export EDITOR=emacs\n"))

		require.NoError(t, fetch.Action(ctx, fetch.Options{Force: true}))
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", "export EDITOR=vim\n")
	})

	t.Run("replaces unrelated history", func(t *testing.T) {
		scene, ctx, out := setup(t)
		require.NoError(t, scene.Upstream.RunGitCommand("checkout", "--orphan", "fresh"))
		require.NoError(t, scene.Upstream.CommitFiles(map[string]string{".profile": "umask 022\n"}, "Start over"))
		require.NoError(t, scene.Upstream.RunGitCommand("push", "--force", "origin", "fresh:main"))

		require.NoError(t, fetch.Action(ctx, fetch.Options{}))
		require.Contains(t, out.String(), "Replacing local history with origin/main")
		testhelpers.ExpectHomeFile(t, scene, ".profile", "umask 022\n")
	})

	t.Run("reports an unreachable remote", func(t *testing.T) {
		scene, ctx, _ := setup(t)
		require.NoError(t, os.Rename(scene.Remote, scene.Remote+".offline"))

		require.ErrorIs(t, fetch.Action(ctx, fetch.Options{}), fetch.ErrOffline)
	})
}
