package actions_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"freckle.dev/freckle/internal/actions"
	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
	"freckle.dev/freckle/testhelpers"
)

var dotfiles = map[string]string{
	".bashrc":               "export EDITOR=vim\n",
	".config/nvim/init.lua": "vim.o.number = true\n",
}

// newSyncedContext seeds the remote, sets the home up and clears the output
func newSyncedContext(t *testing.T) (*testhelpers.Scene, *runtime.Context, *bytes.Buffer) {
	t.Helper()

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.SeedRemote(dotfiles, "Add dotfiles")
	})
	ctx, out := scene.NewContext(t, scene.Config("main"))
	_, err := ctx.Engine.Setup(ctx.Context)
	require.NoError(t, err)
	out.Reset()
	return scene, ctx, out
}

func TestStatusAction(t *testing.T) {
	t.Run("reports an uninitialized home", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		ctx, out := scene.NewContext(t, scene.Config("main"))

		require.NoError(t, actions.StatusAction(ctx, actions.StatusOptions{}))
		require.Contains(t, out.String(), ".freckle.yaml : ✓ exists (no dotfiles repo)")
		require.Contains(t, out.String(), "Dotfiles: not initialized")
	})

	t.Run("reports a missing config file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		ctx, out := scene.NewContext(t, nil)

		require.NoError(t, actions.StatusAction(ctx, actions.StatusOptions{Offline: true}))
		require.Contains(t, out.String(), "not found (run 'freckle init')")
	})

	t.Run("lists every tracked file", func(t *testing.T) {
		scene, ctx, out := newSyncedContext(t)
		require.NoError(t, scene.WriteHome(".bashrc", "export EDITOR=emacs\n"))

		require.NoError(t, actions.StatusAction(ctx, actions.StatusOptions{}))
		output := out.String()
		require.Contains(t, output, ".freckle.yaml : ✗ not tracked in dotfiles")
		require.Contains(t, output, "local-changes")
		require.Contains(t, output, ".bashrc : ⚠ modified locally")
		require.Contains(t, output, ".config/nvim/init.lua : ✓ up-to-date")
	})
}

func TestAddAction(t *testing.T) {
	t.Run("tracks and saves a new file", func(t *testing.T) {
		scene, ctx, out := newSyncedContext(t)
		require.NoError(t, scene.WriteHome(".gitconfig", "[user]\n\tname = Ada\n"))

		err := actions.AddAction(ctx, actions.AddOptions{
			Paths:   []string{filepath.Join(scene.Home, ".gitconfig")},
			Save:    true,
			Message: "Track gitconfig",
		})
		require.NoError(t, err)
		require.Contains(t, out.String(), "Tracking 1 file:")
		require.Contains(t, out.String(), "+ .gitconfig")
		testhelpers.ExpectRemoteHead(t, scene, "main", "Track gitconfig")
	})

	t.Run("refuses files that look like secrets", func(t *testing.T) {
		scene, ctx, out := newSyncedContext(t)
		require.NoError(t, scene.WriteHome(".env", "API_KEY=abc\n"))
		path := filepath.Join(scene.Home, ".env")

		err := actions.AddAction(ctx, actions.AddOptions{Paths: []string{path}})
		require.ErrorContains(t, err, "secrets")
		require.Contains(t, out.String(), ".env: environment file")

		require.NoError(t, actions.AddAction(ctx, actions.AddOptions{Paths: []string{path}, SkipSecretCheck: true}))
	})

	t.Run("skips paths outside home", func(t *testing.T) {
		_, ctx, _ := newSyncedContext(t)

		err := actions.AddAction(ctx, actions.AddOptions{Paths: []string{"/etc/hostname"}})
		require.ErrorContains(t, err, "no files were added")
	})

	t.Run("requires a repository", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		ctx, _ := scene.NewContext(t, scene.Config("main"))

		err := actions.AddAction(ctx, actions.AddOptions{Paths: []string{filepath.Join(scene.Home, ".bashrc")}})
		require.ErrorIs(t, err, freckleerrors.ErrNotInitialized)
	})
}

func TestUntrackAction(t *testing.T) {
	t.Run("keeps the file in home", func(t *testing.T) {
		scene, ctx, out := newSyncedContext(t)

		err := actions.UntrackAction(ctx, actions.UntrackOptions{Paths: []string{filepath.Join(scene.Home, ".bashrc")}})
		require.NoError(t, err)
		require.Contains(t, out.String(), "Stopped tracking 1 file:")
		require.True(t, scene.HomeExists(".bashrc"))
	})

	t.Run("deletes on request", func(t *testing.T) {
		scene, ctx, _ := newSyncedContext(t)

		err := actions.UntrackAction(ctx, actions.UntrackOptions{
			Paths:  []string{filepath.Join(scene.Home, ".config", "nvim")},
			Delete: true,
		})
		require.NoError(t, err)
		require.False(t, scene.HomeExists(".config/nvim/init.lua"))
	})

	t.Run("fails for untracked paths", func(t *testing.T) {
		scene, ctx, _ := newSyncedContext(t)
		require.NoError(t, scene.WriteHome(".profile", "umask 022\n"))

		err := actions.UntrackAction(ctx, actions.UntrackOptions{Paths: []string{filepath.Join(scene.Home, ".profile")}})
		require.ErrorContains(t, err, "no tracked files matched")
	})

	t.Run("needs a terminal to pick files", func(t *testing.T) {
		_, ctx, _ := newSyncedContext(t)

		err := actions.UntrackAction(ctx, actions.UntrackOptions{})
		require.ErrorIs(t, err, tui.ErrInteractiveDisabled)
	})
}

func TestLogAndDiffActions(t *testing.T) {
	scene, ctx, out := newSyncedContext(t)

	require.NoError(t, actions.LogAction(ctx, actions.LogOptions{Oneline: true}))
	require.Contains(t, out.String(), "Add dotfiles")

	out.Reset()
	require.NoError(t, actions.DiffAction(ctx, actions.DiffOptions{}))
	require.Contains(t, out.String(), "No uncommitted changes.")

	require.NoError(t, scene.WriteHome(".bashrc", "export EDITOR=emacs\n"))
	out.Reset()
	require.NoError(t, actions.DiffAction(ctx, actions.DiffOptions{Paths: []string{filepath.Join(scene.Home, ".bashrc")}}))
	require.Contains(t, out.String(), "+export EDITOR=emacs")

	err := actions.DiffAction(ctx, actions.DiffOptions{Paths: []string{"/etc/hostname"}})
	require.Error(t, err)
}

func TestRestoreAction(t *testing.T) {
	scene, ctx, out := newSyncedContext(t)
	require.NoError(t, scene.WriteHome(".bashrc", "export EDITOR=mine\n"))

	point, err := ctx.RestorePoints.Create([]string{".bashrc"}, "pre-fetch", scene.Home)
	require.NoError(t, err)
	require.NoError(t, scene.WriteHome(".bashrc", "export EDITOR=theirs\n"))

	require.NoError(t, actions.RestoreAction(ctx, actions.RestoreOptions{List: true}))
	require.Contains(t, out.String(), point.ID)
	require.Contains(t, out.String(), "pre-fetch")

	err = actions.RestoreAction(ctx, actions.RestoreOptions{Identifier: point.ID})
	require.ErrorIs(t, err, tui.ErrInteractiveDisabled)
	testhelpers.ExpectHomeFile(t, scene, ".bashrc", "export EDITOR=theirs\n")

	require.NoError(t, actions.RestoreAction(ctx, actions.RestoreOptions{Identifier: point.ID[:10], Yes: true}))
	testhelpers.ExpectHomeFile(t, scene, ".bashrc", "export EDITOR=mine\n")

	out.Reset()
	require.NoError(t, actions.RestoreAction(ctx, actions.RestoreOptions{Identifier: point.ID, Delete: true}))
	require.NoError(t, actions.RestoreAction(ctx, actions.RestoreOptions{}))
	require.Contains(t, out.String(), "No restore points.")

	require.Error(t, actions.RestoreAction(ctx, actions.RestoreOptions{Identifier: "1999"}))
}
