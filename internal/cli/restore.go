package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
)

// newRestoreCmd creates the restore command
func newRestoreCmd() *cobra.Command {
	var opts actions.RestoreOptions

	cmd := &cobra.Command{
		Use:   "restore [point]",
		Short: "Bring back files saved before fetch or profile switch discarded them",
		Long: `Restore files from a restore point. Points are created automatically
before 'freckle fetch --force' and 'freckle profile switch --force' discard
local edits.

A point is named by its ID or a unique prefix of it, such as a date.
Without a point, restore lists them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Identifier = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RestoreAction(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.List, "list", "l", false, "List restore points")
	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "Delete the restore point")
	cmd.Flags().StringSliceVarP(&opts.Files, "file", "f", nil, "Restore only this file (repeatable)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Don't ask for confirmation")

	return cmd
}
