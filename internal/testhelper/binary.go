// Package testhelper builds the freckle binary once per test process so CLI
// tests can run it end to end.
package testhelper

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

var (
	binaryPath string
	binaryOnce sync.Once
	binaryErr  error
)

// BinaryPath returns the path of a freshly built freckle binary. The build
// happens on first use and its error is kept for every later caller.
func BinaryPath() (string, error) {
	binaryOnce.Do(func() {
		binaryPath, binaryErr = buildBinary()
	})
	return binaryPath, binaryErr
}

func buildBinary() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", fmt.Errorf("could not find go.mod above %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "freckle-test-binary-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	out := filepath.Join(tmpDir, "freckle")

	cmd := exec.Command("go", "build", "-o", out, "./cmd/freckle")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to build: %s: %w", string(output), err)
	}
	return out, nil
}

// findModuleRoot walks up from dir to the directory holding go.mod
func findModuleRoot(dir string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
