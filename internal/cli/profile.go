package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions/profile"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
)

// newProfileCmd creates the profile command
func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles",
		Long: `A profile is a named machine configuration in ~/.freckle.yaml. Each
profile maps to one branch of the dotfiles repository: the branch named in
its 'branch' key, or the profile's own name. The first profile is active.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, profile.ShowAction)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Short:   "List profiles",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, profile.ListAction)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, profile.ShowAction)
		},
	})
	cmd.AddCommand(newProfileSwitchCmd())
	cmd.AddCommand(&cobra.Command{
		Use:               "diff <profile>",
		Short:             "Compare the current profile's files with another profile",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return profile.DiffAction(ctx, args[0])
			})
		},
	})

	return cmd
}

func newProfileSwitchCmd() *cobra.Command {
	var opts profile.SwitchOptions

	cmd := &cobra.Command{
		Use:               "switch [profile]",
		Short:             "Check out another profile's branch and make it active",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Name = args[0]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return profile.SwitchAction(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Discard local changes (a restore point is kept)")

	return cmd
}
