package git

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	// RemoteName is the only remote freckle works with
	RemoteName = "origin"

	remoteRefPrefix = "refs/remotes/" + RemoteName + "/"
)

// LocalRef returns the full local branch ref name
func LocalRef(branch string) string {
	return plumbing.NewBranchReferenceName(branch).String()
}

// RemoteRef returns the full remote-tracking ref name
func RemoteRef(branch string) string {
	return plumbing.NewRemoteReferenceName(RemoteName, branch).String()
}

// openRepository opens the store with go-git. The store is reopened on every
// query so results always reflect what git commands just wrote.
func (s *Store) openRepository() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpen(s.gitDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata store %s: %w", s.gitDir, err)
	}
	return repo, nil
}

func (s *Store) refExists(name plumbing.ReferenceName) (bool, error) {
	repo, err := s.openRepository()
	if err != nil {
		return false, err
	}
	_, err = repo.Reference(name, true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return true, nil
}

// LocalBranchExists reports whether refs/heads/<name> resolves to a commit
func (s *Store) LocalBranchExists(name string) (bool, error) {
	return s.refExists(plumbing.NewBranchReferenceName(name))
}

// RemoteBranchExists reports whether refs/remotes/origin/<name> resolves to a commit
func (s *Store) RemoteBranchExists(name string) (bool, error) {
	return s.refExists(plumbing.NewRemoteReferenceName(RemoteName, name))
}

// BranchExists reports whether name exists locally or as a remote-tracking branch
func (s *Store) BranchExists(name string) (bool, error) {
	local, err := s.LocalBranchExists(name)
	if err != nil || local {
		return local, err
	}
	return s.RemoteBranchExists(name)
}

// AvailableBranches returns the sorted union of local branches and
// remote-tracking branches of origin, without the origin/ prefix.
func (s *Store) AvailableBranches() ([]string, error) {
	repo, err := s.openRepository()
	if err != nil {
		return nil, err
	}

	refs, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	defer refs.Close()

	seen := make(map[string]bool)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		switch {
		case name.IsBranch():
			seen[name.Short()] = true
		case strings.HasPrefix(name.String(), remoteRefPrefix):
			branch := strings.TrimPrefix(name.String(), remoteRefPrefix)
			if branch != "HEAD" {
				seen[branch] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	branches := make([]string, 0, len(seen))
	for branch := range seen {
		branches = append(branches, branch)
	}
	sort.Strings(branches)
	return branches, nil
}

// HeadBranch returns the branch HEAD symbolically points at, even when that
// branch has no commits yet. It returns false for a detached or unreadable HEAD.
func (s *Store) HeadBranch() (string, bool) {
	repo, err := s.openRepository()
	if err != nil {
		return "", false
	}
	head, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil || head.Type() != plumbing.SymbolicReference {
		return "", false
	}
	if !head.Target().IsBranch() {
		return "", false
	}
	return head.Target().Short(), true
}

// CommitInfo returns the abbreviated hash ref points at, or false if ref does not resolve
func (s *Store) CommitInfo(ref string) (string, bool) {
	repo, err := s.openRepository()
	if err != nil {
		return "", false
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", false
	}
	return hash.String()[:7], true
}

// FileAt returns the content of path in the commit ref points at. It returns
// false when ref does not resolve or the commit has no such file.
func (s *Store) FileAt(ref, path string) (string, bool, error) {
	repo, err := s.openRepository()
	if err != nil {
		return "", false, err
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", false, nil
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", false, fmt.Errorf("failed to read commit %s: %w", ref, err)
	}
	file, err := commit.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s at %s: %w", path, ref, err)
	}
	content, err := file.Contents()
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s at %s: %w", path, ref, err)
	}
	return content, true, nil
}
