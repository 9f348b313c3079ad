package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions/fetch"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
)

// newFetchCmd creates the fetch command
func newFetchCmd() *cobra.Command {
	var opts fetch.Options

	cmd := &cobra.Command{
		Use:     "fetch",
		Short:   "Update your dotfiles from the remote",
		Aliases: []string{"update"},
		Long: `Fetch the latest commits and update the files in your home directory.

If you have unsaved edits or unpushed commits, fetch refuses unless --force
is given. With --force, edited files are copied to a restore point first;
'freckle restore' brings them back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return fetch.Action(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Discard local changes")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would change")

	return cmd
}
