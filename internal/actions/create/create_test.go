package create_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"freckle.dev/freckle/internal/actions/create"
	"freckle.dev/freckle/internal/config"
	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/testhelpers"
)

func remoteFiles(t *testing.T, scene *testhelpers.Scene) string {
	t.Helper()
	remote := &testhelpers.GitRepo{Dir: scene.Remote}
	out, err := remote.RunGitCommandAndGetOutput("ls-tree", "-r", "--name-only", "main")
	require.NoError(t, err)
	return out
}

func TestInitExisting(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)
	ctx, out := scene.NewContext(t, nil)

	err := create.Action(ctx, create.Options{Mode: create.ModeExisting, RepoURL: "git@github.com:octocat/dotfiles.git"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Using GitHub repository github.com/octocat/dotfiles")
	require.Contains(t, out.String(), "✓ Configuration saved")

	cfg, err := config.Load(scene.ConfigPath(), "")
	require.NoError(t, err)
	require.Equal(t, "git@github.com:octocat/dotfiles.git", cfg.Dotfiles.RepoURL)
	require.Equal(t, config.DefaultStoreDir, cfg.Dotfiles.Dir)
	require.Equal(t, []string{"main"}, cfg.Profiles.Names())
	require.False(t, ctx.Engine.IsInitialized())
}

func TestInitRefusesExistingConfig(t *testing.T) {
	scene := testhelpers.NewScene(t, nil)
	ctx, _ := scene.NewContext(t, scene.Config("main"))

	err := create.Action(ctx, create.Options{Mode: create.ModeExisting, RepoURL: scene.Remote})
	require.ErrorContains(t, err, "already exists")

	require.NoError(t, create.Action(ctx, create.Options{Mode: create.ModeExisting, RepoURL: scene.Remote, Force: true}))
}

func TestInitNew(t *testing.T) {
	t.Run("creates and pushes a repository", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, scene.WriteHome(".bashrc", "export EDITOR=vim\n"))
		ctx, out := scene.NewContext(t, nil)

		err := create.Action(ctx, create.Options{
			Mode:    create.ModeNew,
			RepoURL: scene.Remote,
			Files:   []string{".bashrc", ".vimrc"},
		})
		require.NoError(t, err)
		output := out.String()
		require.Contains(t, output, "Note: .vimrc doesn't exist yet, skipping")
		require.Contains(t, output, "✓ Created new dotfiles repository")
		require.Contains(t, output, "✓ Pushed to "+scene.Remote)
		require.True(t, ctx.Engine.IsInitialized())

		testhelpers.ExpectRemoteHead(t, scene, "main", "Initial dotfiles commit")
		files := remoteFiles(t, scene)
		require.Contains(t, files, ".bashrc")
		require.Contains(t, files, config.FileName)
	})

	t.Run("defaults to a new repository without a terminal", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, scene.WriteHome(".zshrc", "setopt autocd\n"))
		ctx, out := scene.NewContext(t, nil)

		require.NoError(t, create.Action(ctx, create.Options{}))
		require.True(t, ctx.Engine.IsInitialized())
		require.Contains(t, out.String(), "+ .zshrc")
		require.Contains(t, out.String(), "No remote configured")

		tracked, err := ctx.Engine.TrackedFiles(ctx.Context)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{config.FileName, ".zshrc"}, tracked)
	})

	t.Run("refuses an existing store", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		ctx, _ := scene.NewContext(t, nil)
		require.NoError(t, create.Action(ctx, create.Options{Mode: create.ModeNew}))

		err := create.Action(ctx, create.Options{Mode: create.ModeNew, Force: true})
		require.ErrorIs(t, err, freckleerrors.ErrAlreadyInitialized)
	})

	t.Run("refuses files that look like secrets", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, scene.WriteHome(".env", "TOKEN=x\n"))
		ctx, _ := scene.NewContext(t, nil)

		err := create.Action(ctx, create.Options{Mode: create.ModeNew, Files: []string{".env"}})
		require.ErrorContains(t, err, "secrets")
		require.False(t, ctx.Engine.IsInitialized())
	})

	t.Run("creates the remote on GitHub", func(t *testing.T) {
		// Pushing to the mock's SSH URL must fail fast instead of dialing out
		t.Setenv("GIT_SSH_COMMAND", "false")

		scene := testhelpers.NewScene(t, nil)
		ctx, out := scene.NewContext(t, nil)
		mock := testhelpers.NewMockGitHubServerConfig()

		err := create.Action(ctx, create.Options{
			Mode:         create.ModeNew,
			GitHub:       true,
			GitHubClient: testhelpers.NewMockGitHubClient(t, mock),
		})
		require.NoError(t, err)
		require.Len(t, mock.CreatedRepos, 1)
		require.Equal(t, "dotfiles", mock.CreatedRepos[0].GetName())
		require.True(t, mock.CreatedRepos[0].GetPrivate())
		require.Contains(t, out.String(), "✓ Created https://github.com/octocat/dotfiles")
		require.Contains(t, out.String(), "Could not push")

		cfg, err := config.Load(scene.ConfigPath(), "")
		require.NoError(t, err)
		require.Equal(t, "git@github.com:octocat/dotfiles.git", cfg.Dotfiles.RepoURL)
	})
}
