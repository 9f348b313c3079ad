package engine

import (
	"context"
)

// RefReader answers questions about refs in the metadata store
type RefReader interface {
	BranchExists(name string) (bool, error)
	LocalBranchExists(name string) (bool, error)
	RemoteBranchExists(name string) (bool, error)
	AvailableBranches() ([]string, error)
	HeadBranch() (string, bool)
	CommitInfo(ref string) (string, bool)
	FileAt(ref, path string) (string, bool, error)
}

// WorkTreeReader compares the work tree and refs
type WorkTreeReader interface {
	TrackedFiles(ctx context.Context, branch string) ([]string, error)
	ChangedFiles(ctx context.Context, ref string) ([]string, error)
	IndexFiles(ctx context.Context) ([]string, error)
	DiffQuiet(ctx context.Context, path string, refs ...string) (bool, error)
	AheadBehind(ctx context.Context, local, remote string) (int, int, error)
	MergeBase(ctx context.Context, a, b string) (string, bool, error)
	DiffStat(ctx context.Context, from, to string) (string, error)
}

// StoreWriter changes the metadata store, the work tree or the remote
type StoreWriter interface {
	Exists() bool
	CloneBare(ctx context.Context) error
	InitBare(ctx context.Context, initialBranch string) error
	HideUntrackedFiles(ctx context.Context) error
	AddRemote(ctx context.Context, url string) error
	Fetch(ctx context.Context) error
	SetupBranchTracking(ctx context.Context, branch string) error
	CreateTrackingBranch(ctx context.Context, branch string) error
	PointHead(ctx context.Context, branch string) error
	Checkout(ctx context.Context, branch string, force bool) error
	HardReset(ctx context.Context, ref string) error
	StageTracked(ctx context.Context, paths []string) error
	AddPaths(ctx context.Context, paths []string) error
	RemovePaths(ctx context.Context, paths []string, deleteFiles bool) error
	Commit(ctx context.Context, message string, allowEmpty bool) error
	Push(ctx context.Context, branch string, setUpstream bool) error
}

// Gateway is everything the engine needs from the metadata store.
// *git.Store implements it.
type Gateway interface {
	RefReader
	WorkTreeReader
	StoreWriter
	GitDir() string
	WorkTree() string
}
