package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"freckle.dev/freckle/internal/engine"
	"freckle.dev/freckle/testhelpers"
)

var dotfiles = map[string]string{
	".bashrc":               "export EDITOR=vim\n",
	".config/nvim/init.lua": "vim.o.number = true\n",
}

// fixedClock names backup directories deterministically
func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
}

func newEngine(scene *testhelpers.Scene, branch string) *engine.Engine {
	return engine.New(scene.NewStore(), scene.Coordinates(branch), engine.WithClock(fixedClock))
}

// newSyncedScene seeds the remote with dotfiles and runs a clean setup
func newSyncedScene(t *testing.T) (*testhelpers.Scene, *engine.Engine) {
	t.Helper()

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.SeedRemote(dotfiles, "Add dotfiles")
	})
	eng := newEngine(scene, "main")
	_, err := eng.Setup(context.Background())
	require.NoError(t, err)
	return scene, eng
}

// pushUpstream makes n commits changing .bashrc from the other machine
func pushUpstream(t *testing.T, scene *testhelpers.Scene, n int) {
	t.Helper()

	require.NoError(t, scene.Upstream.RunGitCommand("pull", "origin", "main"))
	for i := 0; i < n; i++ {
		content := "export EDITOR=nvim # " + string(rune('a'+i)) + "\n"
		require.NoError(t, scene.Upstream.CommitFiles(map[string]string{".bashrc": content}, "Upstream change"))
	}
	require.NoError(t, scene.Upstream.Push("main"))
}
