package actions

import (
	"fmt"
	"path/filepath"
	"strings"

	"freckle.dev/freckle/internal/engine"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
)

// AddOptions specifies options for the add command
type AddOptions struct {
	Paths []string
	// Save commits and pushes the newly tracked files
	Save            bool
	Message         string
	SkipSecretCheck bool
}

// AddAction starts tracking files in the dotfiles repository
func AddAction(ctx *runtime.Context, opts AddOptions) error {
	if err := RequireInitialized(ctx); err != nil {
		return err
	}
	if len(opts.Paths) == 0 {
		return fmt.Errorf("no files given")
	}

	paths, err := absolutePaths(opts.Paths)
	if err != nil {
		return err
	}
	if !opts.SkipSecretCheck {
		if matches := ctx.Secrets.ScanFiles(relativePaths(ctx, paths), ctx.Home); len(matches) > 0 {
			ReportSecrets(ctx.Splog, matches)
			return fmt.Errorf("refusing to track %s that may contain secrets", pluralize(len(matches), "file"))
		}
	}

	var result engine.AddResult
	err = ctx.WithLock(func() error {
		var addErr error
		result, addErr = ctx.Engine.AddFiles(ctx.Context, paths)
		return addErr
	})
	if err != nil {
		return err
	}

	for _, s := range result.Skipped {
		ctx.Splog.Warn("Skipped %s (not found or outside %s)", s, ctx.Home)
	}
	if len(result.Added) == 0 {
		return fmt.Errorf("no files were added")
	}
	ctx.Splog.Info("Tracking %s:", pluralize(len(result.Added), "file"))
	PrintFiles(ctx.Splog, "+", result.Added)

	if !opts.Save {
		ctx.Splog.Tip("Run 'freckle save' to commit and push them.")
		return nil
	}
	message := opts.Message
	if message == "" {
		message = "Add " + joinShort(result.Added)
	}
	return ctx.WithLock(func() error {
		return DescribeResult(ctx.Splog, ctx.Engine.CommitAndPush(ctx.Context, message))
	})
}

// UntrackOptions specifies options for the untrack command
type UntrackOptions struct {
	Paths []string
	// Delete removes the files from the home directory as well
	Delete bool
}

// UntrackAction stops tracking files. Without paths it prompts for them.
func UntrackAction(ctx *runtime.Context, opts UntrackOptions) error {
	if err := RequireInitialized(ctx); err != nil {
		return err
	}

	paths := opts.Paths
	if len(paths) == 0 {
		tracked, err := ctx.Engine.TrackedFiles(ctx.Context)
		if err != nil {
			return err
		}
		if len(tracked) == 0 {
			ctx.Splog.Info("No files are tracked.")
			return nil
		}
		selected, err := tui.PromptMultiSelect("Select files to stop tracking:", tracked, nil)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			ctx.Splog.Info("Nothing selected.")
			return nil
		}
		paths = selected
	} else {
		abs, err := absolutePaths(paths)
		if err != nil {
			return err
		}
		paths = abs
	}

	var result engine.AddResult
	err := ctx.WithLock(func() error {
		var rmErr error
		result, rmErr = ctx.Engine.RemoveFiles(ctx.Context, paths, opts.Delete)
		return rmErr
	})
	if err != nil {
		return err
	}

	for _, s := range result.Skipped {
		ctx.Splog.Warn("Skipped %s (not tracked)", s)
	}
	if len(result.Added) == 0 {
		return fmt.Errorf("no tracked files matched")
	}
	ctx.Splog.Info("Stopped tracking %s:", pluralize(len(result.Added), "file"))
	PrintFiles(ctx.Splog, "-", result.Added)
	ctx.Splog.Tip("Run 'freckle save' to record the removal.")
	return nil
}

// absolutePaths resolves command-line paths against the process working
// directory, the way a shell user expects
func absolutePaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		out = append(out, abs)
	}
	return out, nil
}

func relativePaths(ctx *runtime.Context, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if rel, err := ctx.Engine.RelativePath(p); err == nil {
			out = append(out, rel)
		}
	}
	return out
}

func joinShort(files []string) string {
	if len(files) <= 3 {
		return strings.Join(files, ", ")
	}
	return fmt.Sprintf("%s, %s and %d more", files[0], files[1], len(files)-2)
}
