// Package fetch implements the fetch command: make home match the remote,
// keeping a restore point of any local edits that get discarded.
package fetch

import (
	"errors"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/engine"
	"freckle.dev/freckle/internal/runtime"
)

// RestoreReason labels restore points taken before a fetch
const RestoreReason = "pre-fetch"

var (
	// ErrLocalChanges is returned when a fetch would discard unsaved work
	ErrLocalChanges = errors.New("local changes would be discarded; save them or pass --force")
	// ErrOffline is returned when the remote cannot be reached
	ErrOffline = errors.New("could not connect to the remote")
)

// Options contains options for the fetch command
type Options struct {
	// Force discards local edits and local commits
	Force  bool
	DryRun bool
}

// Action updates home to the remote state of the active branch
func Action(ctx *runtime.Context, opts Options) error {
	splog := ctx.Splog
	if err := actions.RequireInitialized(ctx); err != nil {
		return err
	}

	report, err := ctx.Engine.DetailedStatus(ctx.Context, engine.StatusOptions{})
	if err != nil {
		return err
	}

	if (report.HasLocalChanges() || report.IsAhead()) && !opts.Force {
		if report.HasLocalChanges() {
			splog.Info("You have unsaved local changes:")
			actions.PrintFiles(splog, "-", report.ChangedFiles)
		}
		if report.IsAhead() {
			splog.Info("You have %d local commit(s) that are not on the remote.", report.AheadCount)
		}
		splog.Info("Options:")
		splog.Info("  1. Save your changes first: freckle save")
		splog.Info("  2. Discard and fetch anyway: freckle fetch --force")
		return ErrLocalChanges
	}

	if report.FetchFailed {
		splog.Warn("Could not connect to the remote (offline?)")
		splog.Info("  Try again when you have network access.")
		return ErrOffline
	}

	discard := report.HasLocalChanges() || report.IsAhead()
	if !report.IsBehind() && !report.HistoryUnrelated && !discard {
		splog.Info("✓ Already up-to-date with the remote.")
		return nil
	}

	if opts.DryRun {
		splog.Info("--- DRY RUN (no changes will be made) ---")
		switch {
		case report.HistoryUnrelated:
			splog.Info("Would replace local history with origin/%s.", report.EffectiveBranch)
		case report.IsBehind():
			splog.Info("Would fetch %d change(s) from the remote.", report.BehindCount)
		}
		if report.HasLocalChanges() {
			splog.Info("Would discard local changes to:")
			actions.PrintFiles(splog, "-", report.ChangedFiles)
		}
		return nil
	}

	switch {
	case report.HistoryUnrelated:
		splog.Info("Replacing local history with origin/%s...", report.EffectiveBranch)
	case !report.IsBehind():
		splog.Info("Discarding local work...")
	default:
		splog.Info("Fetching %d change(s) from the remote...", report.BehindCount)
	}

	return ctx.WithLock(func() error {
		if _, err := actions.SnapshotChanges(ctx, RestoreReason); err != nil {
			return err
		}
		if _, err := ctx.Engine.ForceCheckout(ctx.Context); err != nil {
			return err
		}
		splog.Info("✓ Fetched latest from the remote.")
		if report.HasLocalChanges() {
			splog.Tip("Use 'freckle restore --list' to recover the discarded edits.")
		}
		return nil
	})
}
