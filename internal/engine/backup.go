package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BackupDirPrefix starts the name of every backup directory in the work tree
const BackupDirPrefix = ".dotfiles_backup_"

// backupTimeLayout renders as YYYYMMDD_HHMMSS
const backupTimeLayout = "20060102_150405"

// BackupStrategy moves work-tree entries that would block a checkout into a
// timestamped backup directory, keeping their relative paths.
type BackupStrategy struct {
	WorkTree string
	Now      func() time.Time
}

// Plan returns the work-tree paths that collide with the tracked files:
// an existing file, symlink or directory at a tracked path, or a regular file
// where a tracked path needs a parent directory. The result is sorted and
// free of duplicates.
func (b BackupStrategy) Plan(tracked []string) ([]string, error) {
	seen := make(map[string]bool)
	for _, p := range tracked {
		collision, err := b.collision(p)
		if err != nil {
			return nil, err
		}
		if collision != "" {
			seen[collision] = true
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (b BackupStrategy) collision(tracked string) (string, error) {
	parts := strings.Split(tracked, "/")
	for i := 1; i < len(parts); i++ {
		prefix := path.Join(parts[:i]...)
		full := filepath.Join(b.WorkTree, filepath.FromSlash(prefix))
		info, err := os.Lstat(full)
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to inspect %s: %w", prefix, err)
		}
		if info.Mode().IsRegular() {
			return prefix, nil
		}
		// A symlinked directory is kept; a link to anything else blocks the path
		if info.Mode()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(full); err != nil || !target.IsDir() {
				return prefix, nil
			}
		}
	}

	_, err := os.Lstat(filepath.Join(b.WorkTree, filepath.FromSlash(tracked)))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to inspect %s: %w", tracked, err)
	}
	return tracked, nil
}

// Apply moves paths into a new backup directory and returns its absolute path.
// It does nothing and returns "" when paths is empty. On error the returned
// directory holds whatever was already moved.
func (b BackupStrategy) Apply(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}

	dir, err := b.createDir()
	if err != nil {
		return "", err
	}

	for _, p := range paths {
		src := filepath.Join(b.WorkTree, filepath.FromSlash(p))
		dst := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
			return dir, fmt.Errorf("failed to prepare backup of %s: %w", p, err)
		}
		if err := os.Rename(src, dst); err != nil {
			return dir, fmt.Errorf("failed to back up %s: %w", p, err)
		}
	}
	return dir, nil
}

// createDir makes a fresh backup directory, adding a counter when a backup
// from the same second already exists
func (b BackupStrategy) createDir() (string, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	base := filepath.Join(b.WorkTree, BackupDirPrefix+now().Format(backupTimeLayout))

	dir := base
	for i := 2; ; i++ {
		err := os.Mkdir(dir, 0750)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}
		dir = fmt.Sprintf("%s_%d", base, i)
	}
}
