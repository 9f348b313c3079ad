package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"freckle.dev/freckle/internal/config"
	"freckle.dev/freckle/internal/git"
)

// Scene is a dotfiles fixture: a bare remote, an upstream clone that plays a
// second machine, an empty home directory, and the metadata store path freckle
// will use inside that home.
type Scene struct {
	Dir      string
	Remote   string
	Upstream *GitRepo
	Home     string
	StoreDir string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new scene under t.TempDir(). It isolates git from the
// developer's configuration through the environment, so scenes cannot be used
// from parallel tests.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	dir := t.TempDir()
	scene := &Scene{
		Dir:    dir,
		Remote: filepath.Join(dir, "remote.git"),
		Home:   filepath.Join(dir, "home"),
	}
	scene.StoreDir = filepath.Join(scene.Home, ".dotfiles")

	if err := NewBareRepo(scene.Remote); err != nil {
		t.Fatalf("Failed to create remote: %v", err)
	}

	upstream, err := NewGitRepo(filepath.Join(dir, "upstream"))
	if err != nil {
		t.Fatalf("Failed to create upstream repo: %v", err)
	}
	if err := upstream.RunGitCommand("remote", "add", "origin", scene.Remote); err != nil {
		t.Fatalf("Failed to add remote: %v", err)
	}
	scene.Upstream = upstream

	if err := os.MkdirAll(scene.Home, 0750); err != nil {
		t.Fatalf("Failed to create home: %v", err)
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// SeedRemote commits files on the upstream's current branch and pushes it.
func (s *Scene) SeedRemote(files map[string]string, message string) error {
	if err := s.Upstream.CommitFiles(files, message); err != nil {
		return err
	}
	branch, err := s.Upstream.CurrentBranch()
	if err != nil {
		return err
	}
	return s.Upstream.Push(branch)
}

// Coordinates returns the repository coordinates for branch in this scene.
func (s *Scene) Coordinates(branch string) config.Coordinates {
	return config.Coordinates{
		RepoURL:  s.Remote,
		StoreDir: s.StoreDir,
		WorkTree: s.Home,
		Branch:   branch,
	}
}

// NewStore returns a metadata store gateway for this scene.
func (s *Scene) NewStore() *git.Store {
	return git.NewStore(s.StoreDir, s.Home, s.Remote, nil)
}

// WriteHome writes a file relative to the home directory.
func (s *Scene) WriteHome(name, content string) error {
	path := filepath.Join(s.Home, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0600)
}

// ReadHome returns the content of a file relative to the home directory.
func (s *Scene) ReadHome(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Home, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// HomeExists reports whether a path relative to the home directory exists.
func (s *Scene) HomeExists(name string) bool {
	_, err := os.Lstat(filepath.Join(s.Home, name))
	return err == nil
}
