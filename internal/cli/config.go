package cli

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
	"freckle.dev/freckle/internal/tui"
)

// newConfigCmd creates the config command. Without a subcommand it edits the file.
func newConfigCmd() *cobra.Command {
	edit := func(cmd *cobra.Command, _ []string) error {
		opts := runtime.OptionsFrom(cmd.Context())
		path, err := runtime.ConfigPathFor(opts)
		if err != nil {
			return err
		}
		splog := tui.NewSplogWithWriter(cmd.OutOrStdout(), opts.Verbose)
		return actions.ConfigEditAction(splog, path)
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Edit the freckle config file",
		Long: `Opens ~/.freckle.yaml (or --config) in $VISUAL or $EDITOR and checks
that it still loads afterwards. 'freckle config check' compares the committed
config across the branches of every profile.`,
		Args: cobra.NoArgs,
		RunE: edit,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit the freckle config file",
		Args:  cobra.NoArgs,
		RunE:  edit,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Check the config is the same on every profile branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.ConfigCheckAction)
		},
	})

	return cmd
}
