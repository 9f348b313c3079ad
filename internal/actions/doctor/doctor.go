// Package doctor checks that the environment, the config and the metadata
// store are healthy.
package doctor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"freckle.dev/freckle/internal/engine"
	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/internal/github"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
)

// findings collects problems while the checks print their progress
type findings struct {
	splog    *tui.Splog
	warnings []string
	errors   []string
}

func (f *findings) ok(format string, args ...any) {
	f.splog.Info("  ✅ "+format, args...)
}

func (f *findings) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	f.warnings = append(f.warnings, msg)
	f.splog.Warn("  %s", msg)
}

func (f *findings) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	f.errors = append(f.errors, msg)
	f.splog.Error("  %s", msg)
}

// Action runs diagnostic checks
func Action(ctx *runtime.Context) error {
	splog := ctx.Splog
	f := &findings{splog: splog}

	splog.Info("Running freckle doctor...")
	splog.Newline()

	splog.Info("Environment:")
	checkEnvironment(ctx, f)
	splog.Newline()

	splog.Info("Configuration:")
	checkConfig(ctx, f)
	splog.Newline()

	splog.Info("Repository:")
	checkRepository(ctx, f)

	splog.Newline()
	switch {
	case len(f.errors) > 0:
		splog.Warn("Doctor found %d error(s) and %d warning(s).", len(f.errors), len(f.warnings))
		return fmt.Errorf("doctor found %d error(s)", len(f.errors))
	case len(f.warnings) > 0:
		splog.Info("Doctor found %d warning(s). Your freckle setup is mostly healthy.", len(f.warnings))
	default:
		splog.Info("✅ All checks passed. Your freckle setup is healthy.")
	}
	return nil
}

func checkEnvironment(ctx *runtime.Context, f *findings) {
	version, err := exec.CommandContext(ctx.Context, "git", "version").Output()
	if err != nil {
		f.fail("git is not installed or not in PATH")
	} else {
		f.ok("%s", strings.TrimSpace(string(version)))
	}

	if _, err := github.Token(ctx.Context); err != nil {
		f.warn("GitHub authentication not configured (only needed for 'freckle init --github')")
	} else {
		f.ok("GitHub token available")
	}
}

func checkConfig(ctx *runtime.Context, f *findings) {
	cfg := ctx.Config
	if _, err := os.Stat(ctx.ConfigPath); err != nil {
		f.fail("%s not found (run 'freckle init')", ctx.ConfigPath)
		return
	}
	f.ok("%s (version %d)", ctx.ConfigPath, cfg.Version)

	if cfg.Dotfiles.RepoURL == "" {
		f.warn("dotfiles.repo_url is not set; changes cannot be pushed")
	} else {
		f.ok("remote %s", cfg.Dotfiles.RepoURL)
	}
	if len(cfg.Profiles) == 0 {
		f.warn("no profiles defined; using branch %s", cfg.ActiveBranch())
	} else {
		f.ok("%d profile(s), active: %s", len(cfg.Profiles), cfg.Profiles[0].Name)
	}
}

func checkRepository(ctx *runtime.Context, f *findings) {
	eng := ctx.Engine
	if !eng.IsInitialized() {
		f.fail("metadata store %s does not exist (run 'freckle sync' or 'freckle init')", ctx.Coordinates.StoreDir)
		return
	}
	f.ok("metadata store %s", ctx.Coordinates.StoreDir)

	if configured, err := ctx.Store.ConfiguredRemoteURL(ctx.Context); err != nil {
		f.warn("could not read origin: %v", err)
	} else if ctx.Coordinates.RepoURL != "" && configured != ctx.Coordinates.RepoURL {
		f.warn("origin is %s but the config says %s", configured, ctx.Coordinates.RepoURL)
	}

	res := eng.ResolveBranch()
	switch {
	case !res.Found():
		f.fail("%s", res.Message)
	case res.Reason != engine.ReasonExact:
		f.warn("%s", res.Message)
	default:
		f.ok("branch %s", res.Effective)
	}

	lock, err := engine.AcquireStoreLock(ctx.Context, ctx.Coordinates.StoreDir, 0)
	switch {
	case errors.Is(err, freckleerrors.ErrLocked):
		f.warn("another freckle process holds %s", engine.LockPath(ctx.Coordinates.StoreDir))
	case err != nil:
		f.warn("could not check the lock: %v", err)
	default:
		_ = lock.Release()
	}

	report, err := eng.DetailedStatus(ctx.Context, engine.StatusOptions{})
	if err != nil {
		f.fail("status failed: %v", err)
		return
	}
	if report.FetchFailed {
		f.warn("could not reach the remote")
	} else {
		f.ok("remote reachable")
	}
	switch report.State() {
	case engine.StateDiverged, engine.StateDivergedUnknown:
		f.warn("local and remote have diverged (run 'freckle sync' for options)")
	default:
		f.ok("sync state: %s", report.State())
	}
}
