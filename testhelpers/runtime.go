package testhelpers

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"freckle.dev/freckle/internal/config"
	"freckle.dev/freckle/internal/runtime"
)

// Config returns a config pointing at the scene's remote with one profile
// for branch.
func (s *Scene) Config(branch string) *config.Config {
	cfg := config.Default()
	cfg.Dotfiles.RepoURL = s.Remote
	cfg.Dotfiles.Dir = ".dotfiles"
	cfg.Profiles = config.Profiles{{Name: branch}}
	return cfg
}

// ConfigPath is where the scene keeps the freckle config
func (s *Scene) ConfigPath() string {
	return filepath.Join(s.Home, config.FileName)
}

// RestoreRoot is where the scene keeps restore points
func (s *Scene) RestoreRoot() string {
	return filepath.Join(s.Dir, "restore-points")
}

// NewContext saves cfg to the scene's config file (unless cfg is nil) and
// returns a runtime context whose console output is captured. Prompts are
// disabled.
func (s *Scene) NewContext(t *testing.T, cfg *config.Config) (*runtime.Context, *bytes.Buffer) {
	t.Helper()
	t.Setenv("FRECKLE_NO_INTERACTIVE", "1")

	if cfg != nil {
		if err := config.Save(s.ConfigPath(), cfg); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}
	}

	var out bytes.Buffer
	ctx, err := runtime.NewContext(context.Background(), runtime.Options{
		Home:        s.Home,
		ConfigPath:  s.ConfigPath(),
		RestoreRoot: s.RestoreRoot(),
		LockWait:    200 * time.Millisecond,
		Output:      &out,
	})
	if err != nil {
		t.Fatalf("Failed to create context: %v", err)
	}
	return ctx, &out
}
