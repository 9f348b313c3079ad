package cli_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"freckle.dev/freckle/internal/testhelper"
)

// getFreckleBinary returns the path to the freckle binary, building it on first use.
func getFreckleBinary(t *testing.T) string {
	t.Helper()
	binaryPath, err := testhelper.BinaryPath()
	if err != nil {
		t.Fatalf("failed to build freckle binary: %v", err)
	}
	return binaryPath
}

// machine is one home directory driven through the freckle binary
type machine struct {
	t      *testing.T
	binary string
	home   string
	state  string
}

func newMachine(t *testing.T, name string) *machine {
	t.Helper()
	root := t.TempDir()
	m := &machine{
		t:      t,
		binary: getFreckleBinary(t),
		home:   filepath.Join(root, name),
		state:  filepath.Join(root, "state"),
	}
	if err := os.MkdirAll(m.home, 0750); err != nil {
		t.Fatal(err)
	}
	return m
}

func (m *machine) env() []string {
	return append(os.Environ(),
		"HOME="+m.home,
		"FRECKLE_CONFIG=",
		"FRECKLE_NO_INTERACTIVE=1",
		"XDG_STATE_HOME="+m.state,
		"XDG_DATA_HOME="+filepath.Join(m.state, "data"),
		"GIT_CONFIG_GLOBAL="+os.DevNull,
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@example.com",
	)
}

// run executes freckle in the machine's home and returns the combined output
func (m *machine) run(args ...string) (string, error) {
	m.t.Helper()
	cmd := exec.Command(m.binary, args...)
	cmd.Dir = m.home
	cmd.Env = m.env()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (m *machine) mustRun(args ...string) string {
	m.t.Helper()
	out, err := m.run(args...)
	if err != nil {
		m.t.Fatalf("freckle %v failed: %v\n%s", args, err, out)
	}
	return out
}

func (m *machine) write(name, content string) {
	m.t.Helper()
	path := filepath.Join(m.home, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		m.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		m.t.Fatal(err)
	}
}

func (m *machine) read(name string) string {
	m.t.Helper()
	data, err := os.ReadFile(filepath.Join(m.home, name))
	if err != nil {
		m.t.Fatal(err)
	}
	return string(data)
}

// newRemote creates an empty bare repository
func newRemote(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "remote.git")
	out, err := exec.Command("git", "init", "--bare", "--initial-branch=main", dir).CombinedOutput()
	if err != nil {
		t.Fatalf("git init --bare failed: %v\n%s", err, out)
	}
	return dir
}
