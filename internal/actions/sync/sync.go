// Package sync implements the sync command: first-time setup of the
// metadata store, and afterwards a report of how home and remote differ.
package sync

import (
	"fmt"
	"os"
	"path/filepath"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/config"
	"freckle.dev/freckle/internal/engine"
	"freckle.dev/freckle/internal/git"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
	"freckle.dev/freckle/internal/tui/style"
)

// Options contains options for the sync command
type Options struct {
	// Repo overrides dotfiles.repo_url
	Repo string
	// Branch overrides the active profile's branch
	Branch string
	DryRun bool
}

// Action sets the dotfiles up on the first run and reports the sync state
// on later runs
func Action(ctx *runtime.Context, opts Options) error {
	if opts.Repo != "" {
		cfg := *ctx.Config
		cfg.Dotfiles.RepoURL = opts.Repo
		if err := ctx.UseConfig(&cfg); err != nil {
			return err
		}
	}
	if opts.Branch != "" {
		ctx.UseBranch(opts.Branch)
	}

	if !ctx.Engine.IsInitialized() {
		return firstSync(ctx, opts)
	}

	report, err := ctx.Engine.DetailedStatus(ctx.Context, engine.StatusOptions{})
	if err != nil {
		return err
	}
	PrintState(ctx.Splog, report)
	return nil
}

func firstSync(ctx *runtime.Context, opts Options) error {
	splog := ctx.Splog
	coords := ctx.Coordinates
	if coords.RepoURL == "" {
		return fmt.Errorf("no dotfiles repository URL found; run 'freckle init' or pass --repo")
	}

	if opts.DryRun {
		return preview(ctx)
	}

	splog.Info("Initial setup of dotfiles from %s", coords.RepoURL)
	var result engine.SetupResult
	err := ctx.WithLock(func() error {
		return tui.RunSteps([]tui.Step{{
			Label: "Cloning and checking out dotfiles",
			Run: func() (string, error) {
				var setupErr error
				result, setupErr = ctx.Engine.Setup(ctx.Context)
				if setupErr != nil {
					return "", setupErr
				}
				return fmt.Sprintf("(%s on %s)", pluralizeFiles(len(result.Files)), result.Branch.Effective), nil
			},
		}}, splog)
	})
	if err != nil {
		return err
	}

	if result.Branch.Message != "" {
		splog.Warn("%s", result.Branch.Message)
	}
	if result.BackupDir != "" {
		splog.Info("Moved %s that were in the way to %s:", pluralizeFiles(len(result.Collisions)), result.BackupDir)
		actions.PrintFiles(splog, "~", result.Collisions)
	}
	if opts.Repo != "" {
		if err := ctx.SaveConfig(); err != nil {
			return err
		}
		splog.Info("Saved repository URL to %s.", ctx.ConfigPath)
	}
	splog.Info("✓ Dotfiles are set up.")
	return nil
}

// preview clones into a scratch store and reports what the first sync
// would create and move aside, without touching home
func preview(ctx *runtime.Context) error {
	splog := ctx.Splog
	coords := ctx.Coordinates

	tmp, err := os.MkdirTemp("", "freckle-preview-")
	if err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	scratch := config.Coordinates{
		RepoURL:  coords.RepoURL,
		StoreDir: filepath.Join(tmp, "store.git"),
		WorkTree: coords.WorkTree,
		Branch:   coords.Branch,
	}
	store := git.NewStore(scratch.StoreDir, scratch.WorkTree, scratch.RepoURL, splog.Logger())
	if err := store.CloneBare(ctx.Context); err != nil {
		return fmt.Errorf("could not preview remote repository: %w", err)
	}
	plan, err := engine.New(store, scratch, engine.WithLogger(splog.Logger())).PlanCheckout(ctx.Context)
	if err != nil {
		return err
	}

	splog.Info("--- DRY RUN (no changes will be made) ---")
	splog.Info("Would sync from: %s", coords.RepoURL)
	splog.Info("Would clone to:  %s", coords.StoreDir)
	if plan.Branch.Message != "" {
		splog.Warn("%s", plan.Branch.Message)
	}
	if len(plan.Files) == 0 {
		splog.Info("No files found in remote repository.")
		return nil
	}

	collide := make(map[string]bool, len(plan.Collisions))
	for _, c := range plan.Collisions {
		collide[c] = true
	}
	var create []string
	for _, f := range plan.Files {
		if !collide[f] {
			create = append(create, f)
		}
	}
	if len(plan.Collisions) > 0 {
		splog.Info("Existing paths that would be moved to a backup (%d):", len(plan.Collisions))
		actions.PrintFiles(splog, "~", plan.Collisions)
	}
	if len(create) > 0 {
		splog.Info("Files that would be created (%d):", len(create))
		actions.PrintFiles(splog, "+", create)
	}
	splog.Info("Total: %s on %s (%d backed up, %d created)",
		pluralizeFiles(len(plan.Files)), plan.Branch.Effective, len(plan.Collisions), len(create))
	return nil
}

// PrintState explains a sync report and suggests the next command
func PrintState(splog *tui.Splog, report engine.SyncReport) {
	if report.FetchFailed {
		splog.Warn("Could not connect to remote (offline mode)")
	}
	if report.Branch.Message != "" {
		splog.Warn("%s", report.Branch.Message)
	}
	branch := style.ColorBranchName(report.EffectiveBranch, false)

	switch report.State() {
	case engine.StateNotInitialized:
		splog.Info("Dotfiles are not set up yet.")
		splog.Tip("Run 'freckle sync' with a repository configured, or 'freckle init'.")
	case engine.StateUpToDate:
		splog.Info("✓ Dotfiles are up-to-date.")
	case engine.StateLocalOnly:
		splog.Info("⚠ You have local changes that are not backed up:")
		actions.PrintFiles(splog, "-", report.ChangedFiles)
		if report.IsAhead() {
			splog.Info("  (Local is %d commit(s) ahead of remote)", report.AheadCount)
		}
		splog.Tip("To back up these changes, run: freckle save")
	case engine.StateBehind:
		splog.Info("↓ Remote (%s) has %d new commit(s).", branch, report.BehindCount)
		splog.Tip("To update your local files, run: freckle fetch")
	case engine.StateDiverged:
		splog.Info("‼ CONFLICT: local work AND new commits on the remote (%s).", branch)
		splog.Info("  Local commit : %s", report.LocalCommit)
		splog.Info("  Remote commit: %s", report.RemoteCommit)
		splog.Info("  Ahead by %d, behind by %d commit(s)", report.AheadCount, report.BehindCount)
		if report.HasLocalChanges() {
			splog.Info("Local changes:")
			actions.PrintFiles(splog, "-", report.ChangedFiles)
		}
		splog.Info("Options to resolve:")
		splog.Info("  - keep local work and publish it: freckle save")
		splog.Info("  - discard local work and update:  freckle fetch --force")
	case engine.StateDivergedUnknown:
		splog.Info("‼ Local and remote (%s) have unrelated histories.", branch)
		splog.Info("  Local commit : %s", report.LocalCommit)
		splog.Info("  Remote commit: %s", report.RemoteCommit)
		splog.Tip("To replace local history with the remote, run: freckle fetch --force")
	case engine.StateAheadOnly:
		splog.Info("↑ Local is %d commit(s) ahead of remote.", report.AheadCount)
		splog.Tip("To push, run: freckle save")
	case engine.StateRemoteMissing:
		splog.Info("↑ Local branch %s has no remote counterpart.", branch)
		splog.Tip("To push, run: freckle save")
	}
}

func pluralizeFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
