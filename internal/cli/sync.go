package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions/sync"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	var opts sync.Options

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Set up dotfiles on this machine, or report what needs syncing",
		Long: `On the first run, sync clones the dotfiles repository into the metadata
store and checks the files out into your home directory. Existing files that
would be overwritten are moved to ~/.dotfiles_backup_<timestamp> first.

On later runs, sync compares your home directory with the remote and
suggests the command that brings them together.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return sync.Action(ctx, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Repo, "repo", "r", "", "Override the dotfiles repository URL")
	cmd.Flags().StringVarP(&opts.Branch, "branch", "b", "", "Override the branch")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what the first sync would do without changing anything")

	return cmd
}
