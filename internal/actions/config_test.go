package actions_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/config"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
	"freckle.dev/freckle/testhelpers"
)

const committedConfig = "version: 2\nprofiles:\n  main: {}\n  work: {}\n"

// newProfileContext publishes main and work branches, each committing workConfig
// as the work branch's config, and sets main up in home
func newProfileContext(t *testing.T, workConfig string, profiles config.Profiles) (*runtime.Context, *bytes.Buffer) {
	t.Helper()

	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.SeedRemote(map[string]string{config.FileName: committedConfig, ".bashrc": "# home\n"}, "Add dotfiles"); err != nil {
			return err
		}
		if err := s.Upstream.CreateBranch("work"); err != nil {
			return err
		}
		if err := s.Upstream.CommitFiles(map[string]string{config.FileName: workConfig}, "Work config"); err != nil {
			return err
		}
		return s.Upstream.Push("work")
	})

	cfg := scene.Config("main")
	cfg.Profiles = profiles
	ctx, out := scene.NewContext(t, cfg)
	_, err := ctx.Engine.Setup(ctx.Context)
	require.NoError(t, err)
	out.Reset()
	return ctx, out
}

func TestConfigCheckAction(t *testing.T) {
	mainAndWork := config.Profiles{{Name: "main"}, {Name: "work"}}

	t.Run("consistent", func(t *testing.T) {
		ctx, out := newProfileContext(t, committedConfig, mainAndWork)

		require.NoError(t, actions.ConfigCheckAction(ctx))
		require.Contains(t, out.String(), "main (main) (current)")
		require.Contains(t, out.String(), "✓ work (work)")
		require.Contains(t, out.String(), "Config is consistent across all branches.")
	})

	t.Run("reports a differing branch", func(t *testing.T) {
		ctx, out := newProfileContext(t, committedConfig+"vars:\n  editor: code\n", mainAndWork)

		err := actions.ConfigCheckAction(ctx)
		require.ErrorIs(t, err, actions.ErrConfigInconsistent)
		require.Contains(t, out.String(), "✗ work (work) - differs")
	})

	t.Run("reports a profile without a branch", func(t *testing.T) {
		profiles := append(config.Profiles{}, mainAndWork...)
		profiles = append(profiles, config.Profile{Name: "laptop"})
		ctx, out := newProfileContext(t, committedConfig, profiles)

		err := actions.ConfigCheckAction(ctx)
		require.ErrorIs(t, err, actions.ErrConfigInconsistent)
		require.Contains(t, out.String(), "✗ laptop (laptop) - branch not found")
		require.Contains(t, out.String(), "✓ work (work)")
	})

	t.Run("needs the config committed on the current branch", func(t *testing.T) {
		_, ctx, _ := newSyncedContext(t)
		ctx.Config.Profiles = config.Profiles{{Name: "main"}, {Name: "work"}}

		require.ErrorContains(t, actions.ConfigCheckAction(ctx), "no .freckle.yaml committed on branch main")
	})

	t.Run("without profiles", func(t *testing.T) {
		_, ctx, out := newSyncedContext(t)
		ctx.Config.Profiles = nil

		require.NoError(t, actions.ConfigCheckAction(ctx))
		require.Contains(t, out.String(), "No profiles configured.")
	})
}

func TestConfigEditAction(t *testing.T) {
	t.Setenv("FRECKLE_NO_INTERACTIVE", "1")
	dir := t.TempDir()
	var out bytes.Buffer
	splog := tui.NewSplogWithWriter(&out, false)

	missing := filepath.Join(dir, "missing.yaml")
	require.ErrorContains(t, actions.ConfigEditAction(splog, missing), "config file not found")
	require.Contains(t, out.String(), "freckle init")

	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(committedConfig), 0o600))
	require.ErrorIs(t, actions.ConfigEditAction(splog, path), tui.ErrInteractiveDisabled)
}
