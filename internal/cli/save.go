package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions/save"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
)

// newSaveCmd creates the save command
func newSaveCmd() *cobra.Command {
	var opts save.Options

	cmd := &cobra.Command{
		Use:     "save",
		Short:   "Commit changed dotfiles and push them",
		Aliases: []string{"backup"},
		Long: `Commit every tracked file that changed and push the commit. Untracked
files are never included; use 'freckle add' first.

Changed files are scanned for secrets such as private keys and API tokens
before anything is committed. If the push fails, for example while offline,
the commit is kept and the next save pushes it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return save.Action(ctx, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "Commit message (default lists the changed files)")
	cmd.Flags().BoolVarP(&opts.Edit, "edit", "e", false, "Edit the commit message in $EDITOR")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would be saved")
	cmd.Flags().BoolVar(&opts.SkipSecretCheck, "skip-secret-check", false, "Save even if files look like they contain secrets")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress output (for scripts and cron)")
	cmd.Flags().BoolVar(&opts.Scheduled, "scheduled", false, "Label the commit as a scheduled save")
	_ = cmd.Flags().MarkHidden("scheduled")

	return cmd
}
