package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
)

// newAddCmd creates the add command
func newAddCmd() *cobra.Command {
	var opts actions.AddOptions

	cmd := &cobra.Command{
		Use:   "add <file>...",
		Short: "Start tracking files in your home directory",
		Long: `Start tracking files or directories. Paths must be inside your home
directory. The files are scanned for secrets first.

The new files are committed by the next 'freckle save', or right away with
--save.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.AddAction(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Save, "save", "s", false, "Commit and push the files immediately")
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "Commit message when saving")
	cmd.Flags().BoolVar(&opts.SkipSecretCheck, "skip-secret-check", false, "Add even if files look like they contain secrets")

	return cmd
}

// newUntrackCmd creates the untrack command
func newUntrackCmd() *cobra.Command {
	var opts actions.UntrackOptions

	cmd := &cobra.Command{
		Use:     "untrack [file...]",
		Short:   "Stop tracking files",
		Aliases: []string{"rm"},
		Long: `Stop tracking files. The files stay in your home directory unless
--delete is given. Without arguments, pick files from a list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.UntrackAction(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "Also delete the files from your home directory")

	return cmd
}
