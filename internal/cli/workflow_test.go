package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTwoMachineWorkflow(t *testing.T) {
	remote := newRemote(t)
	laptop := newMachine(t, "laptop")
	desktop := newMachine(t, "desktop")

	laptop.write(".bashrc", "export EDITOR=vim\n")
	out := laptop.mustRun("init", "--new", "--repo", remote, ".bashrc")
	require.Contains(t, out, "Created new dotfiles repository")
	require.Contains(t, out, "Pushed to")

	out = desktop.mustRun("init", "--existing", "--repo", remote)
	require.Contains(t, out, "Configuration saved")

	desktop.write(".bashrc", "# desktop defaults\n")
	out = desktop.mustRun("sync")
	require.Contains(t, out, "Dotfiles are set up.")
	require.Equal(t, "export EDITOR=vim\n", desktop.read(".bashrc"))

	desktop.write(".bashrc", "export EDITOR=nvim\n")
	out = desktop.mustRun("status")
	require.Contains(t, out, "modified locally")

	out = desktop.mustRun("save", "-m", "Use neovim")
	require.Contains(t, out, "Changes pushed to remote.")

	out = laptop.mustRun("status")
	require.Contains(t, out, "behind")

	out = laptop.mustRun("fetch")
	require.Contains(t, out, "Fetched latest from the remote.")
	require.Equal(t, "export EDITOR=nvim\n", laptop.read(".bashrc"))

	out = laptop.mustRun("log", "--oneline")
	require.Contains(t, out, "Use neovim")

	out = laptop.mustRun("sync")
	require.Contains(t, out, "Dotfiles are up-to-date.")

	out = laptop.mustRun("config", "check")
	require.Contains(t, out, "Config is consistent across all branches.")
}

func TestTrackingFiles(t *testing.T) {
	remote := newRemote(t)
	m := newMachine(t, "home")
	m.mustRun("init", "--new", "--repo", remote)

	m.write(".gitconfig", "[user]\n\tname = Test User\n")
	out := m.mustRun("add", "--save", "-m", "Track gitconfig", ".gitconfig")
	require.Contains(t, out, "Tracking 1 file:")
	require.Contains(t, out, "Changes pushed to remote.")

	m.write(".env", "TOKEN=abc\n")
	out, err := m.run("add", ".env")
	require.Error(t, err)
	require.Contains(t, out, "environment file")

	out = m.mustRun("untrack", ".gitconfig")
	require.Contains(t, out, "Stopped tracking 1 file:")
	require.Equal(t, "[user]\n\tname = Test User\n", m.read(".gitconfig"))
}

func TestCommandsBeforeInit(t *testing.T) {
	m := newMachine(t, "home")

	out := m.mustRun("status")
	require.Contains(t, out, "not found (run 'freckle init')")
	require.Contains(t, out, "Dotfiles: not initialized")

	out, err := m.run("save")
	require.Error(t, err)
	require.Contains(t, out, "not initialized")

	out, err = m.run("sync")
	require.Error(t, err)
	require.Contains(t, out, "no dotfiles repository URL")

	out, err = m.run("config")
	require.Error(t, err)
	require.Contains(t, out, "config file not found")
}

func TestInitFlags(t *testing.T) {
	m := newMachine(t, "home")

	out, err := m.run("init", "--existing", "--new")
	require.Error(t, err)
	require.Contains(t, out, "mutually exclusive")

	m.mustRun("init", "--existing", "--repo", "https://github.com/octocat/dotfiles.git")
	out, err = m.run("init", "--existing", "--repo", "https://github.com/octocat/dotfiles.git")
	require.Error(t, err)
	require.Contains(t, out, "--force")
}

func TestVersion(t *testing.T) {
	m := newMachine(t, "home")

	out := m.mustRun("version")
	require.Contains(t, out, "freckle dev")
}
