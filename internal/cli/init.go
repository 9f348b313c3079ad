package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/actions/create"
	"freckle.dev/freckle/internal/cli/helpers"
	"freckle.dev/freckle/internal/runtime"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var (
		opts     create.Options
		existing bool
		newRepo  bool
	)

	cmd := &cobra.Command{
		Use:   "init [files...]",
		Short: "Create a dotfiles repository, or configure an existing one",
		Long: `Set freckle up on this machine.

With --existing, init writes ~/.freckle.yaml for a repository that already
holds your dotfiles; run 'freckle sync' afterwards to check them out.

With --new, init creates the metadata store, tracks the given files (or a
few common ones) together with the config file, and pushes the first commit
when a remote is configured. --github creates that remote through the
GitHub API using GITHUB_TOKEN or the gh CLI's token.

Without either flag, init asks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if existing && newRepo {
				return fmt.Errorf("--existing and --new are mutually exclusive")
			}
			switch {
			case existing:
				opts.Mode = create.ModeExisting
			case newRepo || opts.GitHub || len(args) > 0:
				opts.Mode = create.ModeNew
			}
			opts.Files = args
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return create.Action(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&existing, "existing", false, "Configure an existing repository")
	cmd.Flags().BoolVar(&newRepo, "new", false, "Create a new repository")
	cmd.Flags().StringVarP(&opts.RepoURL, "repo", "r", "", "Remote repository URL")
	cmd.Flags().StringVarP(&opts.Branch, "branch", "b", "", "Branch (and first profile) name (default main)")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Metadata store directory, relative to home (default ~/.dotfiles)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite an existing config file")
	cmd.Flags().BoolVar(&opts.GitHub, "github", false, "Create the remote repository on GitHub")
	cmd.Flags().StringVar(&opts.GitHubName, "github-name", "", "Name of the GitHub repository (default dotfiles)")
	cmd.Flags().BoolVar(&opts.GitHubPublic, "public", false, "Make the GitHub repository public")

	return cmd
}
