package engine

import (
	"context"
	"slices"
	"strings"

	freckleerrors "freckle.dev/freckle/internal/errors"
)

// AddResult lists which requested paths were tracked
type AddResult struct {
	Added   []string
	Skipped []string
}

// AddFiles starts tracking the given paths. Paths that do not exist or lie
// outside the work tree are skipped. Nothing is committed.
func (e *Engine) AddFiles(ctx context.Context, paths []string) (AddResult, error) {
	if !e.gw.Exists() {
		return AddResult{}, freckleerrors.ErrNotInitialized
	}
	added, skipped := e.existingFiles(paths)
	if err := e.gw.AddPaths(ctx, added); err != nil {
		return AddResult{}, err
	}
	return AddResult{Added: added, Skipped: skipped}, nil
}

// RemoveFiles stops tracking the given paths. Paths missing from the index
// are returned as skipped. With deleteFiles the files are
// removed from the work tree as well.
func (e *Engine) RemoveFiles(ctx context.Context, paths []string, deleteFiles bool) (AddResult, error) {
	if !e.gw.Exists() {
		return AddResult{}, freckleerrors.ErrNotInitialized
	}
	tracked, err := e.gw.IndexFiles(ctx)
	if err != nil {
		return AddResult{}, err
	}

	var result AddResult
	for _, p := range paths {
		rel, err := e.RelativePath(p)
		if err != nil || !isTrackedPath(tracked, rel) {
			result.Skipped = append(result.Skipped, p)
			continue
		}
		result.Added = append(result.Added, rel)
	}

	if err := e.gw.RemovePaths(ctx, result.Added, deleteFiles); err != nil {
		return AddResult{}, err
	}
	return result, nil
}

// isTrackedPath reports whether rel is a tracked file or a directory containing one
func isTrackedPath(tracked []string, rel string) bool {
	if slices.Contains(tracked, rel) {
		return true
	}
	prefix := rel + "/"
	return slices.ContainsFunc(tracked, func(p string) bool {
		return strings.HasPrefix(p, prefix)
	})
}
