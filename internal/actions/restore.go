package actions

import (
	"fmt"

	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
)

// RestoreOptions specifies options for the restore command
type RestoreOptions struct {
	// Identifier is a restore point ID or a unique prefix of one
	Identifier string
	// Files limits the restore to these home-relative paths
	Files  []string
	List   bool
	Delete bool
	// Yes skips the confirmation prompt
	Yes bool
}

// RestoreAction lists, deletes or restores restore points
func RestoreAction(ctx *runtime.Context, opts RestoreOptions) error {
	splog := ctx.Splog
	mgr := ctx.RestorePoints

	if opts.List || opts.Identifier == "" {
		return listRestorePoints(ctx)
	}

	point, err := mgr.Get(opts.Identifier)
	if err != nil {
		return err
	}

	if opts.Delete {
		if err := mgr.Delete(point); err != nil {
			return fmt.Errorf("failed to delete restore point %s: %w", point.ID, err)
		}
		splog.Info("Deleted restore point %s.", point.ID)
		return nil
	}

	files := point.Files
	if len(opts.Files) > 0 {
		files = opts.Files
	}
	splog.Info("Restore point %s (%s, %s):", point.ID, point.Reason, point.DisplayTime())
	PrintFiles(splog, "~", files)

	if !opts.Yes {
		ok, err := tui.PromptConfirm(fmt.Sprintf("Overwrite %s in %s?", pluralize(len(files), "file"), ctx.Home), false)
		if err != nil {
			return fmt.Errorf("%w (pass --yes to restore without prompting)", err)
		}
		if !ok {
			splog.Info("Cancelled.")
			return nil
		}
	}

	restored, err := mgr.Restore(point, ctx.Home, opts.Files)
	if err != nil {
		return err
	}
	splog.Info("✓ Restored %s.", pluralize(len(restored), "file"))
	return nil
}

func listRestorePoints(ctx *runtime.Context) error {
	points, err := ctx.RestorePoints.List()
	if err != nil {
		return err
	}
	if len(points) == 0 {
		ctx.Splog.Info("No restore points.")
		return nil
	}
	ctx.Splog.Info("Restore points (newest first):")
	for _, p := range points {
		ctx.Splog.Info("  %s  %s  %-20s %s", p.ID, p.DisplayTime(), p.Reason, pluralize(len(p.Files), "file"))
	}
	return nil
}

