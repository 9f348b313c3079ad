package helpers

import (
	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/runtime"
)

// CompleteProfiles is a helper for cobra.ValidArgsFunction that returns the
// profile names from the config file.
func CompleteProfiles(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer func() { _ = ctx.Splog.Close() }()
	return ctx.Config.Profiles.Names(), cobra.ShellCompDirectiveNoFileComp
}
