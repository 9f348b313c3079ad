package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show the sync status of the repository and every tracked file",
		Aliases: []string{"st"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.StatusAction(ctx, actions.StatusOptions{Offline: offline})
			})
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Don't contact the remote; compare with the last fetched state")

	return cmd
}
