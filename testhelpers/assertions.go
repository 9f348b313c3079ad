// Package testhelpers provides testing utilities for freckle,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ExpectHomeFile asserts that a file relative to the scene's home has content.
func ExpectHomeFile(t *testing.T, scene *Scene, name, content string) {
	t.Helper()

	got, err := scene.ReadHome(name)
	require.NoError(t, err, "Failed to read %s", name)
	require.Equal(t, content, got, "Unexpected content in %s", name)
}

// BackupDirs returns the backup directories created under the scene's home.
func BackupDirs(t *testing.T, scene *Scene) []string {
	t.Helper()

	entries, err := os.ReadDir(scene.Home)
	require.NoError(t, err)

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), ".dotfiles_backup_") {
			dirs = append(dirs, filepath.Join(scene.Home, entry.Name()))
		}
	}
	return dirs
}

// ExpectRemoteHead asserts the subject of the newest commit on branch in the remote.
func ExpectRemoteHead(t *testing.T, scene *Scene, branch, subject string) {
	t.Helper()

	remote := &GitRepo{Dir: scene.Remote}
	got, err := remote.RunGitCommandAndGetOutput("log", "-1", "--format=%s", branch)
	require.NoError(t, err)
	require.Equal(t, subject, got)
}
