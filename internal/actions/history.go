package actions

import (
	"strings"

	"freckle.dev/freckle/internal/git"
	"freckle.dev/freckle/internal/runtime"
)

// DefaultLogCount is how many commits log shows by default
const DefaultLogCount = 10

// LogOptions specifies options for the log command
type LogOptions struct {
	Count   int
	Oneline bool
}

// LogAction prints the recent history of the active branch
func LogAction(ctx *runtime.Context, opts LogOptions) error {
	if err := RequireInitialized(ctx); err != nil {
		return err
	}
	count := opts.Count
	if count <= 0 {
		count = DefaultLogCount
	}

	branch := ctx.Engine.ResolveBranch().Effective
	out, err := ctx.Store.Log(ctx.Context, git.LocalRef(branch), count, opts.Oneline)
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) == "" {
		ctx.Splog.Info("No commits on %s yet.", branch)
		return nil
	}
	ctx.Splog.Page(strings.TrimRight(out, "\n") + "\n")
	return nil
}

// DiffOptions specifies options for the diff command
type DiffOptions struct {
	Paths []string
}

// DiffAction prints the uncommitted changes to tracked files
func DiffAction(ctx *runtime.Context, opts DiffOptions) error {
	if err := RequireInitialized(ctx); err != nil {
		return err
	}
	paths := make([]string, 0, len(opts.Paths))
	for _, p := range opts.Paths {
		rel, err := ctx.Engine.RelativePath(p)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
	}

	out, err := ctx.Store.Diff(ctx.Context, paths...)
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) == "" {
		ctx.Splog.Info("No uncommitted changes.")
		return nil
	}
	ctx.Splog.Page(strings.TrimRight(out, "\n") + "\n")
	return nil
}
