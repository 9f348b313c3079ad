package actions

import (
	"fmt"

	"freckle.dev/freckle/internal/engine"
	freckleerrors "freckle.dev/freckle/internal/errors"
	"freckle.dev/freckle/internal/restore"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/secrets"
	"freckle.dev/freckle/internal/tui"
)

// maxListedFiles caps file lists in summaries
const maxListedFiles = 20

// PrintFiles lists files with a marker, eliding the tail of long lists
func PrintFiles(splog *tui.Splog, marker string, files []string) {
	for i, f := range files {
		if i == maxListedFiles {
			splog.Info("    ... and %d more", len(files)-maxListedFiles)
			return
		}
		splog.Info("    %s %s", marker, f)
	}
}

// DescribeResult turns a CommitResult into a user-facing error, printing
// the non-fatal outcomes. It returns nil for NoChanges and Committed.
func DescribeResult(splog *tui.Splog, result engine.CommitResult) error {
	switch r := result.(type) {
	case engine.NoChanges:
		splog.Info("No changes to save.")
	case engine.Committed:
		if r.Pushed {
			splog.Info("✓ Changes pushed to remote.")
			return nil
		}
		splog.Warn("Changes saved locally but could not be pushed: %s", r.PushError)
		splog.Tip("Run 'freckle save' again when you are back online.")
	case engine.Failed:
		return r
	default:
		return fmt.Errorf("unexpected commit result %T", result)
	}
	return nil
}

// SnapshotChanges stores the changed tracked files in a new restore point
// before a destructive operation. It returns nil when nothing changed.
func SnapshotChanges(ctx *runtime.Context, reason string) (*restore.Point, error) {
	changed, err := ctx.Engine.ChangedFiles(ctx.Context)
	if err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		return nil, nil
	}
	point, err := ctx.RestorePoints.Create(changed, reason, ctx.Home)
	if err != nil {
		return nil, fmt.Errorf("failed to create restore point: %w", err)
	}
	if point != nil {
		ctx.Splog.Info("  (backed up %d files to restore point %s)", len(point.Files), point.ID)
	}
	return point, nil
}

// RequireInitialized returns ErrNotInitialized with a hint when the store is missing
func RequireInitialized(ctx *runtime.Context) error {
	if ctx.Engine.IsInitialized() {
		return nil
	}
	ctx.Splog.Tip("Run 'freckle init' to create a repository or 'freckle sync' to clone one.")
	return fmt.Errorf("%s: %w", ctx.Coordinates.StoreDir, freckleerrors.ErrNotInitialized)
}

// ReportSecrets lists the files the secret scanner flagged
func ReportSecrets(splog *tui.Splog, matches []secrets.Match) {
	splog.Error("Possible secrets detected in %d file(s):", len(matches))
	for _, m := range matches {
		location := m.File
		if m.Line > 0 {
			location = fmt.Sprintf("%s:%d", m.File, m.Line)
		}
		if m.Snippet != "" {
			splog.Info("    %s: %s (%s)", location, m.Reason, m.Snippet)
		} else {
			splog.Info("    %s: %s", location, m.Reason)
		}
	}
	splog.Tip("Remove the files with 'freckle untrack', allow them under secrets.allow, or pass --skip-secret-check.")
}
