package sync_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"freckle.dev/freckle/internal/actions/sync"
	"freckle.dev/freckle/internal/config"
	"freckle.dev/freckle/testhelpers"
)

var dotfiles = map[string]string{
	".bashrc":               "export EDITOR=vim\n",
	".config/nvim/init.lua": "vim.o.number = true\n",
}

func seeded(s *testhelpers.Scene) error {
	return s.SeedRemote(dotfiles, "Add dotfiles")
}

func TestFirstSync(t *testing.T) {
	t.Run("clones into an empty home", func(t *testing.T) {
		scene := testhelpers.NewScene(t, seeded)
		ctx, out := scene.NewContext(t, scene.Config("main"))

		require.NoError(t, sync.Action(ctx, sync.Options{}))
		require.Contains(t, out.String(), "✓ Dotfiles are set up.")
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", dotfiles[".bashrc"])
		testhelpers.ExpectHomeFile(t, scene, ".config/nvim/init.lua", dotfiles[".config/nvim/init.lua"])
		require.Empty(t, testhelpers.BackupDirs(t, scene))
	})

	t.Run("moves colliding files aside", func(t *testing.T) {
		scene := testhelpers.NewScene(t, seeded)
		require.NoError(t, scene.WriteHome(".bashrc", "# mine\n"))
		ctx, out := scene.NewContext(t, scene.Config("main"))

		require.NoError(t, sync.Action(ctx, sync.Options{}))
		require.Contains(t, out.String(), "Moved 1 file that were in the way")
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", dotfiles[".bashrc"])
		require.Len(t, testhelpers.BackupDirs(t, scene), 1)
	})

	t.Run("previews without touching home", func(t *testing.T) {
		scene := testhelpers.NewScene(t, seeded)
		require.NoError(t, scene.WriteHome(".bashrc", "# mine\n"))
		ctx, out := scene.NewContext(t, scene.Config("main"))

		require.NoError(t, sync.Action(ctx, sync.Options{DryRun: true}))
		output := out.String()
		require.Contains(t, output, "DRY RUN")
		require.Contains(t, output, "Total: 2 files on main (1 backed up, 1 created)")
		require.False(t, ctx.Engine.IsInitialized())
		testhelpers.ExpectHomeFile(t, scene, ".bashrc", "# mine\n")
	})

	t.Run("needs a repository URL", func(t *testing.T) {
		scene := testhelpers.NewScene(t, seeded)
		cfg := scene.Config("main")
		cfg.Dotfiles.RepoURL = ""
		ctx, _ := scene.NewContext(t, cfg)

		err := sync.Action(ctx, sync.Options{})
		require.ErrorContains(t, err, "no dotfiles repository URL")
	})

	t.Run("saves a repository passed on the command line", func(t *testing.T) {
		scene := testhelpers.NewScene(t, seeded)
		cfg := scene.Config("main")
		cfg.Dotfiles.RepoURL = ""
		ctx, _ := scene.NewContext(t, cfg)

		require.NoError(t, sync.Action(ctx, sync.Options{Repo: scene.Remote}))

		saved, err := config.Load(scene.ConfigPath(), "")
		require.NoError(t, err)
		require.Equal(t, scene.Remote, saved.Dotfiles.RepoURL)
	})
}

func TestSyncReportsState(t *testing.T) {
	scene := testhelpers.NewScene(t, seeded)
	ctx, out := scene.NewContext(t, scene.Config("main"))
	require.NoError(t, sync.Action(ctx, sync.Options{}))

	out.Reset()
	require.NoError(t, sync.Action(ctx, sync.Options{}))
	require.Contains(t, out.String(), "✓ Dotfiles are up-to-date.")

	require.NoError(t, scene.Upstream.CommitFiles(map[string]string{".bashrc": "export EDITOR=nano\n"}, "Switch editor"))
	require.NoError(t, scene.Upstream.Push("main"))
	out.Reset()
	require.NoError(t, sync.Action(ctx, sync.Options{}))
	require.Contains(t, out.String(), "has 1 new commit(s)")
	require.Contains(t, out.String(), "freckle fetch")

	require.NoError(t, scene.WriteHome(".bashrc", "export EDITOR=emacs\n"))
	out.Reset()
	require.NoError(t, sync.Action(ctx, sync.Options{}))
	require.Contains(t, out.String(), "CONFLICT")
	require.Contains(t, out.String(), "freckle fetch --force")
}
