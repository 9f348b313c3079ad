// Package cli wires the freckle commands into a cobra command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"freckle.dev/freckle/internal/runtime"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var opts runtime.Options

	rootCmd := &cobra.Command{
		Use:   "freckle",
		Short: "Keep your dotfiles in sync across machines",
		Long: `freckle keeps the dotfiles in your home directory in sync with a git
repository. Files stay where they are; a bare repository (by default
~/.dotfiles) records them, with your home directory as its work tree.

Start with 'freckle init' on your first machine and 'freckle sync' on the
others. Afterwards 'freckle save' publishes local edits and 'freckle fetch'
brings in edits made elsewhere.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(runtime.WithOptions(cmd.Context(), opts))
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default $FRECKLE_CONFIG or ~/.freckle.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show debug output")
	rootCmd.PersistentFlags().DurationVar(&opts.LockWait, "lock-wait", runtime.DefaultLockWait, "How long to wait for another freckle process")
	rootCmd.PersistentFlags().StringVar(&opts.Home, "home", "", "Home directory to manage")
	_ = rootCmd.PersistentFlags().MarkHidden("home")

	rootCmd.AddGroup(
		&cobra.Group{ID: "sync", Title: "Sync Commands:"},
		&cobra.Group{ID: "files", Title: "File Commands:"},
		&cobra.Group{ID: "setup", Title: "Setup Commands:"},
	)

	for _, c := range []*cobra.Command{newSyncCmd(), newStatusCmd(), newSaveCmd(), newFetchCmd()} {
		c.GroupID = "sync"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{newAddCmd(), newUntrackCmd(), newLogCmd(), newDiffCmd(), newRestoreCmd()} {
		c.GroupID = "files"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{newInitCmd(), newProfileCmd(), newConfigCmd(), newDoctorCmd()} {
		c.GroupID = "setup"
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

