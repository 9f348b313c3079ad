// Package profile implements the profile commands. A profile is a named
// machine configuration mapped to one branch of the dotfiles repository.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/config"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
	"freckle.dev/freckle/internal/tui/style"
)

// RestoreReason labels restore points taken before a forced switch
const RestoreReason = "pre-profile-switch"

// ErrUnsavedChanges is returned when a switch would discard local edits
var ErrUnsavedChanges = errors.New("you have unsaved changes; save them or pass --force")

// currentBranch returns the branch HEAD of the store is on, falling back
// to the configured active branch when there is no store
func currentBranch(ctx *runtime.Context) string {
	if ctx.Engine.IsInitialized() {
		if head, ok := ctx.Store.HeadBranch(); ok {
			return head
		}
	}
	return ctx.Config.ActiveBranch()
}

// ListAction prints every profile, marking the current one
func ListAction(ctx *runtime.Context) error {
	splog := ctx.Splog
	profiles := ctx.Config.Profiles
	if len(profiles) == 0 {
		splog.Info("No profiles configured.")
		splog.Tip("To create a profile, add to %s:\n  profiles:\n    main:\n      description: \"My main config\"\n      modules: [zsh, nvim]", config.FileName)
		return nil
	}

	current := currentBranch(ctx)
	splog.Info("Available profiles:")
	for _, p := range profiles {
		if p.BranchName() == current {
			splog.Info("  %s %s", style.ColorGreen("*"), style.Bold(p.Name))
		} else {
			splog.Info("    %s", p.Name)
		}
		printDetails(ctx, p, "      ")
	}
	return nil
}

// ShowAction prints the profile mapped to the current branch
func ShowAction(ctx *runtime.Context) error {
	splog := ctx.Splog
	if !ctx.Engine.IsInitialized() {
		splog.Info("No dotfiles repository found.")
		return nil
	}

	current := currentBranch(ctx)
	p, ok := ctx.Config.Profiles.ForBranch(current)
	if !ok {
		splog.Info("Current branch: %s", style.ColorBranchName(current, true))
		splog.Info("%s", style.ColorDim("  (not matching any defined profile)"))
		return nil
	}
	splog.Info("Current profile: %s", style.Bold(p.Name))
	splog.Info("%s", style.ColorDim("  Branch: "+current))
	printDetails(ctx, p, "  ")
	return nil
}

func printDetails(ctx *runtime.Context, p config.Profile, indent string) {
	if p.Description != "" {
		ctx.Splog.Info("%s", style.ColorDim(indent+p.Description))
	}
	if len(p.Modules) > 0 {
		ctx.Splog.Info("%s", style.ColorDim(indent+"modules: "+strings.Join(p.Modules, ", ")))
	}
	if p.BranchName() != p.Name {
		ctx.Splog.Info("%s", style.ColorDim(indent+"branch: "+p.BranchName()))
	}
}

// SwitchOptions contains options for profile switch
type SwitchOptions struct {
	Name string
	// Force discards local edits after saving them in a restore point
	Force bool
}

// SwitchAction checks out the profile's branch and makes the profile the
// active one in the config
func SwitchAction(ctx *runtime.Context, opts SwitchOptions) error {
	splog := ctx.Splog
	if err := actions.RequireInitialized(ctx); err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		options := make([]tui.SelectOption, 0, len(ctx.Config.Profiles))
		for _, p := range ctx.Config.Profiles {
			options = append(options, tui.SelectOption{Label: p.Name, Value: p.Name})
		}
		selected, err := tui.PromptSelect("Switch to profile:", options, 0)
		if err != nil {
			return err
		}
		name = selected
	}

	p, ok := ctx.Config.Profiles.Get(name)
	if !ok {
		splog.Error("Profile not found: %s", name)
		if names := ctx.Config.Profiles.Names(); len(names) > 0 {
			splog.Info("Available profiles: %s", strings.Join(names, ", "))
		}
		return fmt.Errorf("profile %q not found", name)
	}
	branch := p.BranchName()

	changed, err := ctx.Engine.ChangedFiles(ctx.Context)
	if err != nil {
		return err
	}
	if len(changed) > 0 && !opts.Force {
		splog.Info("You have uncommitted changes:")
		actions.PrintFiles(splog, "-", changed)
		splog.Tip("Use --force to discard them, or run 'freckle save'.")
		return ErrUnsavedChanges
	}

	splog.Info("Switching to profile '%s' (branch: %s)...", p.Name, branch)
	err = ctx.WithLock(func() error {
		if len(changed) > 0 {
			if _, err := actions.SnapshotChanges(ctx, RestoreReason); err != nil {
				return err
			}
		}
		if err := ctx.Engine.SwitchBranch(ctx.Context, branch, opts.Force); err != nil {
			return fmt.Errorf("failed to switch: %w", err)
		}
		if err := ctx.Config.ActivateProfile(p.Name); err != nil {
			return err
		}
		return ctx.SaveConfig()
	})
	if err != nil {
		return err
	}
	ctx.UseBranch("")

	splog.Info("✓ Switched to profile '%s'", p.Name)
	if len(p.Modules) > 0 {
		splog.Info("%s", style.ColorDim("  Modules: "+strings.Join(p.Modules, ", ")))
	}
	return nil
}

// DiffAction summarizes how another profile's files differ from the current one
func DiffAction(ctx *runtime.Context, name string) error {
	splog := ctx.Splog
	if err := actions.RequireInitialized(ctx); err != nil {
		return err
	}
	p, ok := ctx.Config.Profiles.Get(name)
	if !ok {
		return fmt.Errorf("profile %q not found", name)
	}

	current := currentBranch(ctx)
	target := p.BranchName()
	if current == target {
		splog.Info("Already on profile '%s'", name)
		return nil
	}

	out, err := ctx.Engine.CompareBranches(ctx.Context, current, target)
	if err != nil {
		return err
	}
	splog.Info("Comparing '%s' to '%s' (%s):", current, name, target)
	if strings.TrimSpace(out) == "" {
		splog.Info("%s", style.ColorDim("No differences found."))
		return nil
	}
	splog.Page(strings.TrimRight(out, "\n") + "\n")
	return nil
}
