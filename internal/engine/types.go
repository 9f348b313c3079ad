package engine

// Reason explains how the effective branch was chosen
type Reason string

const (
	ReasonExact           Reason = "exact"
	ReasonMainMasterSwap  Reason = "main_master_swap"
	ReasonFallbackHead    Reason = "fallback_head"
	ReasonFallbackDefault Reason = "fallback_default"
	ReasonNotFound        Reason = "not_found"
)

// BranchResolution is the outcome of resolving the configured branch.
// Effective is never empty; on ReasonNotFound it equals Configured.
type BranchResolution struct {
	Configured string
	Effective  string
	Reason     Reason
	Available  []string
	// Message explains any substitution; empty for ReasonExact
	Message string
}

// Found reports whether a usable branch was resolved
func (r BranchResolution) Found() bool {
	return r.Reason != ReasonNotFound
}

// SyncReport describes the repository relative to its remote at one moment.
// When Initialized is false no other field is meaningful.
type SyncReport struct {
	Initialized     bool
	Branch          BranchResolution
	EffectiveBranch string
	ChangedFiles    []string
	// LocalCommit and RemoteCommit are abbreviated hashes; empty when the ref is absent
	LocalCommit  string
	RemoteCommit string
	AheadCount   int
	BehindCount  int
	FetchFailed  bool
	// RemoteBranchMissing is set when the local branch was never pushed
	RemoteBranchMissing bool
	// HistoryUnrelated is set when local and remote share no commit, so
	// AheadCount and BehindCount are not meaningful
	HistoryUnrelated bool
}

// HasLocalChanges reports whether any tracked file differs from the branch head
func (r SyncReport) HasLocalChanges() bool {
	return len(r.ChangedFiles) > 0
}

// IsAhead reports whether local has commits the remote lacks
func (r SyncReport) IsAhead() bool {
	return r.AheadCount > 0
}

// IsBehind reports whether the remote has commits local lacks
func (r SyncReport) IsBehind() bool {
	return r.BehindCount > 0
}

// SyncState classifies a SyncReport
type SyncState string

const (
	StateNotInitialized  SyncState = "not-initialized"
	StateUpToDate        SyncState = "up-to-date"
	StateLocalOnly       SyncState = "local-changes"
	StateBehind          SyncState = "behind"
	StateDiverged        SyncState = "diverged"
	StateAheadOnly       SyncState = "ahead"
	StateRemoteMissing   SyncState = "remote-missing"
	StateDivergedUnknown SyncState = "diverged-unknown"
)

// State classifies the report. Being behind together with local edits or
// local commits is Diverged, since force-updating would discard either.
func (r SyncReport) State() SyncState {
	switch {
	case !r.Initialized:
		return StateNotInitialized
	case r.HistoryUnrelated:
		return StateDivergedUnknown
	case r.IsBehind() && (r.HasLocalChanges() || r.IsAhead()):
		return StateDiverged
	case r.HasLocalChanges():
		return StateLocalOnly
	case r.IsBehind():
		return StateBehind
	case r.IsAhead():
		return StateAheadOnly
	case r.RemoteBranchMissing && r.LocalCommit != "":
		return StateRemoteMissing
	default:
		return StateUpToDate
	}
}

// FileSyncStatus is the sync state of a single work-tree path
type FileSyncStatus string

const (
	FileNotInitialized FileSyncStatus = "not-initialized"
	FileNotFound       FileSyncStatus = "not-found"
	FileMissing        FileSyncStatus = "missing"
	FileUntracked      FileSyncStatus = "untracked"
	FileUpToDate       FileSyncStatus = "up-to-date"
	FileModified       FileSyncStatus = "modified"
	FileBehind         FileSyncStatus = "behind"
	FileError          FileSyncStatus = "error"
)
