// Package save implements the save command: commit the changed tracked
// files and publish them, reporting offline pushes without failing.
package save

import (
	"errors"
	"fmt"
	"strings"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/engine"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
)

// Options contains options for the save command
type Options struct {
	Message string
	// Edit opens $EDITOR on the commit message
	Edit bool
	// Scheduled marks saves started by a timer rather than a person
	Scheduled       bool
	DryRun          bool
	SkipSecretCheck bool
	Quiet           bool
	// Platform names this machine in generated messages
	Platform string
}

// ErrSecretsFound is returned when the scanner flags a changed file
var ErrSecretsFound = errors.New("possible secrets found; nothing was saved")

// Action commits local changes and pushes them, or pushes commits that an
// earlier offline save left behind
func Action(ctx *runtime.Context, opts Options) error {
	splog := ctx.Splog
	if opts.Quiet {
		splog.SetQuiet(true)
		defer splog.SetQuiet(false)
	}
	if err := actions.RequireInitialized(ctx); err != nil {
		return err
	}

	report, err := ctx.Engine.DetailedStatus(ctx.Context, engine.StatusOptions{})
	if err != nil {
		return err
	}
	state := report.State()
	if !report.HasLocalChanges() && !report.IsAhead() && state != engine.StateRemoteMissing {
		splog.Info("✓ Nothing to save - already up-to-date.")
		return nil
	}

	changed := report.ChangedFiles
	if len(changed) > 0 && !opts.SkipSecretCheck {
		if matches := ctx.Secrets.ScanFiles(changed, ctx.Home); len(matches) > 0 {
			actions.ReportSecrets(splog, matches)
			return ErrSecretsFound
		}
	}

	if opts.DryRun {
		splog.Info("--- DRY RUN (no changes will be made) ---")
		if report.HasLocalChanges() {
			splog.Info("Would save the following files:")
			actions.PrintFiles(splog, "-", changed)
		}
		switch {
		case report.IsAhead():
			splog.Info("Would push %d existing commit(s).", report.AheadCount)
		case state == engine.StateRemoteMissing:
			splog.Info("Would create %s on the remote.", report.EffectiveBranch)
		default:
			splog.Info("Would push to the remote.")
		}
		return nil
	}

	if state == engine.StateDiverged || state == engine.StateDivergedUnknown {
		splog.Warn("The remote has commits you don't have; the push will be rejected until you run 'freckle fetch --force'.")
	}

	var result engine.CommitResult
	if report.HasLocalChanges() {
		splog.Info("Saving changed file(s):")
		actions.PrintFiles(splog, "-", changed)

		message, err := commitMessage(opts, changed)
		if err != nil {
			return err
		}
		err = ctx.WithLock(func() error {
			result = ctx.Engine.CommitAndPush(ctx.Context, message)
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		err := ctx.WithLock(func() error {
			result = ctx.Engine.Push(ctx.Context)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return actions.DescribeResult(splog, result)
}

func commitMessage(opts Options, changed []string) (string, error) {
	message := opts.Message
	if message == "" {
		prefix := "Save"
		if opts.Scheduled {
			prefix = "Scheduled save"
		}
		platform := opts.Platform
		if platform == "" {
			platform = runtime.Platform()
		}
		message = BuildMessage(prefix, platform, changed)
	}
	if !opts.Edit {
		return message, nil
	}

	edited, err := tui.EditMessage(message + "\n\n# Lines starting with '#' are ignored. An empty message aborts the save.\n")
	if err != nil {
		return "", err
	}
	if edited == "" {
		return "", fmt.Errorf("aborting save due to empty commit message")
	}
	return edited, nil
}

// BuildMessage builds "<prefix> from <platform>" followed by the changed files
func BuildMessage(prefix, platform string, changed []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s from %s", prefix, platform)
	if len(changed) > 0 {
		b.WriteString("\n\nChanged files:")
		for _, f := range changed {
			fmt.Fprintf(&b, "\n  - %s", f)
		}
	}
	return b.String()
}
