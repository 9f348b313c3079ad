// Package restore keeps timestamped copies of files before freckle overwrites
// them, and copies them back on request.
package restore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	manifestName = "manifest.yaml"
	filesDir     = "files"
	idTimeLayout = "2006-01-02T15-04-05"
)

// Point is one saved snapshot
type Point struct {
	ID      string    `yaml:"id"`
	Reason  string    `yaml:"reason"`
	Created time.Time `yaml:"created"`
	Files   []string  `yaml:"files"`

	dir string
}

// DisplayTime renders the creation time for listings
func (p Point) DisplayTime() string {
	return p.Created.Local().Format("2006-01-02 15:04:05")
}

// Manager stores restore points under Root, one directory per point
type Manager struct {
	Root string
	Now  func() time.Time
}

// DefaultRoot returns $XDG_DATA_HOME/freckle/restore-points
func DefaultRoot() string {
	return filepath.Join(xdg.DataHome, "freckle", "restore-points")
}

// NewManager creates a Manager rooted at root
func NewManager(root string) *Manager {
	return &Manager{Root: root, Now: time.Now}
}

// Create copies the given home-relative files into a new restore point.
// Files that no longer exist are skipped; when none exist it returns nil.
func (m *Manager) Create(files []string, reason, home string) (*Point, error) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	created := now().UTC()
	point := &Point{
		ID:      created.Format(idTimeLayout) + "-" + uuid.NewString()[:8],
		Reason:  reason,
		Created: created,
	}
	point.dir = filepath.Join(m.Root, point.ID)

	for _, f := range files {
		src := filepath.Join(home, filepath.FromSlash(f))
		info, err := os.Lstat(src)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to inspect %s: %w", f, err)
		}
		if err := copyEntry(src, filepath.Join(point.dir, filesDir, filepath.FromSlash(f)), info); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", f, err)
		}
		point.Files = append(point.Files, f)
	}
	if len(point.Files) == 0 {
		return nil, nil
	}

	data, err := yaml.Marshal(point)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(point.dir, manifestName), data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	return point, nil
}

// List returns all restore points, newest first
func (m *Manager) List() ([]Point, error) {
	entries, err := os.ReadDir(m.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", m.Root, err)
	}

	var points []Point
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(m.Root, entry.Name())
		data, err := os.ReadFile(filepath.Join(dir, manifestName))
		if err != nil {
			continue
		}
		var p Point
		if err := yaml.Unmarshal(data, &p); err != nil {
			continue
		}
		p.dir = dir
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Created.After(points[j].Created)
	})
	return points, nil
}

// Get returns the newest point whose ID starts with identifier, so a date
// like 2024-03-09 selects the latest point of that day
func (m *Manager) Get(identifier string) (*Point, error) {
	points, err := m.List()
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		if identifier != "" && strings.HasPrefix(p.ID, identifier) {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("restore point not found: %s", identifier)
}

// Delete removes a restore point
func (m *Manager) Delete(p *Point) error {
	if p.dir == "" {
		return fmt.Errorf("restore point %s has no directory", p.ID)
	}
	return os.RemoveAll(p.dir)
}

// Restore copies files from the point back into home. An empty files list
// restores everything. It returns the files written.
func (m *Manager) Restore(p *Point, home string, files []string) ([]string, error) {
	if len(files) == 0 {
		files = p.Files
	}

	var restored []string
	for _, f := range files {
		src := filepath.Join(p.dir, filesDir, filepath.FromSlash(f))
		info, err := os.Lstat(src)
		if err != nil {
			return restored, fmt.Errorf("%s is not in restore point %s: %w", f, p.ID, err)
		}
		if err := copyEntry(src, filepath.Join(home, filepath.FromSlash(f)), info); err != nil {
			return restored, fmt.Errorf("failed to restore %s: %w", f, err)
		}
		restored = append(restored, f)
	}
	return restored, nil
}

// copyEntry copies a regular file or recreates a symlink at dst
func copyEntry(src, dst string, info fs.FileInfo) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return err
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		_ = os.Remove(dst)
		return os.Symlink(target, dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
