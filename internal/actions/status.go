package actions

import (
	"fmt"
	"os"

	"freckle.dev/freckle/internal/engine"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui/style"
)

// StatusOptions specifies options for the status command
type StatusOptions struct {
	// Offline skips contacting the remote
	Offline bool
}

var fileStatusText = map[engine.FileSyncStatus]string{
	engine.FileUpToDate:  "✓ up-to-date",
	engine.FileModified:  "⚠ modified locally",
	engine.FileBehind:    "↓ update available (behind remote)",
	engine.FileUntracked: "✗ not tracked in dotfiles",
	engine.FileMissing:   "✗ missing from home",
	engine.FileNotFound:  "✓ local only",
	engine.FileError:     "⚠ error checking status",
}

// FileStatusText renders a file status for listings
func FileStatusText(status engine.FileSyncStatus) string {
	if text, ok := fileStatusText[status]; ok {
		return text
	}
	return "status: " + string(status)
}

// StatusAction prints the config file status, the repository summary and
// the status of every tracked file
func StatusAction(ctx *runtime.Context, opts StatusOptions) error {
	splog := ctx.Splog
	eng := ctx.Engine

	splog.Info("Configuration:")
	configName := ctx.ConfigPath
	if rel, err := eng.RelativePath(ctx.ConfigPath); err == nil {
		configName = rel
	}
	switch {
	case !fileExists(ctx.ConfigPath):
		splog.Info("  %s : ✗ not found (run 'freckle init')", configName)
	case !eng.IsInitialized():
		splog.Info("  %s : ✓ exists (no dotfiles repo)", configName)
	default:
		splog.Info("  %s : %s", configName, FileStatusText(eng.FileStatus(ctx.Context, ctx.ConfigPath)))
	}

	report, err := eng.DetailedStatus(ctx.Context, engine.StatusOptions{Offline: opts.Offline})
	if err != nil {
		return err
	}
	splog.Newline()
	if !report.Initialized {
		splog.Info("Dotfiles: not initialized")
		splog.Tip("Run 'freckle init' to create a repository or 'freckle sync' to clone one.")
		return nil
	}

	printSummary(ctx, report)

	tracked, err := eng.TrackedFiles(ctx.Context)
	if err != nil {
		return err
	}
	if len(tracked) == 0 {
		return nil
	}
	splog.Newline()
	splog.Info("Tracked files:")
	for _, f := range tracked {
		splog.Info("  %s : %s", f, FileStatusText(eng.FileStatus(ctx.Context, f)))
	}
	return nil
}

func printSummary(ctx *runtime.Context, report engine.SyncReport) {
	splog := ctx.Splog

	splog.Info("Dotfiles (%s):", ctx.Coordinates.StoreDir)
	splog.Info("  Branch : %s", style.ColorBranchName(report.EffectiveBranch, true))
	if report.Branch.Message != "" {
		splog.Warn("%s", report.Branch.Message)
	}
	splog.Info("  State  : %s", style.ColorState(string(report.State())))
	if report.LocalCommit != "" {
		splog.Info("  Local  : %s", report.LocalCommit)
	}
	if report.RemoteCommit != "" {
		splog.Info("  Remote : %s", report.RemoteCommit)
	}
	if report.IsAhead() || report.IsBehind() {
		splog.Info("  Ahead %d, behind %d", report.AheadCount, report.BehindCount)
	}
	if report.FetchFailed {
		splog.Warn("Could not connect to remote (offline mode)")
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// pluralize formats a count with a noun
func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
