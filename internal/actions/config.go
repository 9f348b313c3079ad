package actions

import (
	"errors"
	"fmt"
	"os"

	"freckle.dev/freckle/internal/config"
	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
	"freckle.dev/freckle/internal/tui/style"
)

// ErrConfigInconsistent is returned when profile branches carry different configs
var ErrConfigInconsistent = errors.New("config differs between profile branches")

// ConfigEditAction opens the config file in the user's editor and checks the
// result still loads. It takes no runtime context, so a config that no longer
// parses can still be repaired with it.
func ConfigEditAction(splog *tui.Splog, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			splog.Tip("Run 'freckle init' to create one.")
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	if err := tui.EditFile(path); err != nil {
		return err
	}

	cfg, err := runtime.ValidateConfig(path)
	if err != nil {
		splog.Tip("Run 'freckle config' again to fix it.")
		return err
	}
	splog.Info("%s Config is valid (%d profile(s)).", style.ColorGreen("✓"), len(cfg.Profiles))
	return nil
}

// ConfigCheckAction compares the committed config file on the current branch
// with the one on every other profile's branch.
func ConfigCheckAction(ctx *runtime.Context) error {
	splog := ctx.Splog
	profiles := ctx.Config.Profiles
	if len(profiles) == 0 {
		splog.Info("No profiles configured.")
		return nil
	}
	if err := RequireInitialized(ctx); err != nil {
		return err
	}

	current := ctx.Engine.ResolveBranch().Effective
	if head, ok := ctx.Store.HeadBranch(); ok {
		current = head
	}
	want, ok, err := ctx.Engine.BranchFile(current, config.FileName)
	if err != nil {
		return err
	}
	if !ok {
		splog.Tip("Track it with 'freckle add ~/%s'.", config.FileName)
		return fmt.Errorf("no %s committed on branch %s", config.FileName, current)
	}

	splog.Info("Checking %s consistency...", config.FileName)
	splog.Newline()

	var differing []string
	for _, p := range profiles {
		branch := p.BranchName()
		if branch == current {
			splog.Info("  %s %s (%s) %s", style.ColorGreen("✓"), p.Name, branch, style.ColorDim("(current)"))
			continue
		}
		got, found, err := ctx.Engine.BranchFile(branch, config.FileName)
		if err != nil && !errors.Is(err, freckleerrors.ErrBranchNotFound) {
			return err
		}
		if found && got == want {
			splog.Info("  %s %s (%s)", style.ColorGreen("✓"), p.Name, branch)
			continue
		}
		differing = append(differing, p.Name)
		reason := "differs"
		switch {
		case err != nil:
			reason = "branch not found"
		case !found:
			reason = "missing"
		}
		splog.Info("  %s %s (%s) - %s", style.ColorRed("✗"), p.Name, branch, reason)
	}

	splog.Newline()
	if len(differing) > 0 {
		splog.Tip("Switch to each differing profile with 'freckle profile switch', update %s and run 'freckle save'.", config.FileName)
		return fmt.Errorf("%w: %d profile(s)", ErrConfigInconsistent, len(differing))
	}
	splog.Info("%s Config is consistent across all branches.", style.ColorGreen("✓"))
	return nil
}
