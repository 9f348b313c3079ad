package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var opts actions.LogOptions

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Show recent saves",
		Aliases: []string{"history"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.LogAction(ctx, opts)
			})
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", actions.DefaultLogCount, "Number of commits to show")
	cmd.Flags().BoolVar(&opts.Oneline, "oneline", false, "Show hash and subject only")

	return cmd
}

// newDiffCmd creates the diff command
func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [file...]",
		Short: "Show unsaved changes to tracked files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.DiffAction(ctx, actions.DiffOptions{Paths: args})
			})
		},
	}

	return cmd
}
