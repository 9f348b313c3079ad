package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func branches(names ...string) func() ([]string, error) {
	return func() ([]string, error) { return names, nil }
}

func headAt(name string) func() (string, bool) {
	return func() (string, bool) { return name, name != "" }
}

func TestResolveBranch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
		available  func() ([]string, error)
		head       func() (string, bool)
		effective  string
		reason     Reason
		message    string
	}{
		{
			name:       "exact match",
			configured: "main",
			available:  branches("main", "dev"),
			head:       headAt("dev"),
			effective:  "main",
			reason:     ReasonExact,
		},
		{
			name:       "main falls back to master",
			configured: "main",
			available:  branches("master"),
			head:       headAt("master"),
			effective:  "master",
			reason:     ReasonMainMasterSwap,
			message:    "Branch 'main' not found; using 'master' instead.",
		},
		{
			name:       "master falls back to main",
			configured: "master",
			available:  branches("main"),
			head:       headAt(""),
			effective:  "main",
			reason:     ReasonMainMasterSwap,
			message:    "Branch 'master' not found; using 'main' instead.",
		},
		{
			name:       "uses HEAD when it names an existing branch",
			configured: "feature",
			available:  branches("develop", "main"),
			head:       headAt("develop"),
			effective:  "develop",
			reason:     ReasonFallbackHead,
			message:    "Branch 'feature' not found; using current HEAD 'develop'.",
		},
		{
			name:       "ignores HEAD naming an unborn branch",
			configured: "feature",
			available:  branches("master", "dev"),
			head:       headAt("unborn"),
			effective:  "master",
			reason:     ReasonFallbackDefault,
			message:    "Branch 'feature' not found; falling back to 'master'.",
		},
		{
			name:       "prefers main over master as a default",
			configured: "feature",
			available:  branches("master", "main"),
			head:       nil,
			effective:  "main",
			reason:     ReasonFallbackDefault,
			message:    "Branch 'feature' not found; falling back to 'main'.",
		},
		{
			name:       "not found lists available branches",
			configured: "feature",
			available:  branches("dev", "prod"),
			head:       headAt(""),
			effective:  "feature",
			reason:     ReasonNotFound,
			message:    "Branch 'feature' not found. Available: dev, prod",
		},
		{
			name:       "not found with no branches",
			configured: "main",
			available:  branches(),
			head:       headAt("main"),
			effective:  "main",
			reason:     ReasonNotFound,
			message:    "Branch 'main' not found. Available: (none)",
		},
		{
			name:       "failing provider counts as empty",
			configured: "main",
			available:  func() ([]string, error) { return nil, errors.New("boom") },
			head:       headAt("main"),
			effective:  "main",
			reason:     ReasonNotFound,
			message:    "Branch 'main' not found. Available: (none)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := ResolveBranch(tt.configured, tt.available, tt.head)
			require.Equal(t, tt.configured, res.Configured)
			require.Equal(t, tt.effective, res.Effective)
			require.Equal(t, tt.reason, res.Reason)
			require.Equal(t, tt.message, res.Message)
			require.NotEmpty(t, res.Effective)
		})
	}
}

func TestResolveBranchNormalizesAvailable(t *testing.T) {
	t.Parallel()

	res := ResolveBranch("x", branches("prod", "dev", "prod", ""), nil)
	require.Equal(t, []string{"dev", "prod"}, res.Available)
	require.Equal(t, "Branch 'x' not found. Available: dev, prod", res.Message)
}

func TestResolveBranchIsDeterministic(t *testing.T) {
	t.Parallel()

	first := ResolveBranch("feature", branches("b", "a", "main"), headAt("b"))
	for i := 0; i < 5; i++ {
		require.Equal(t, first, ResolveBranch("feature", branches("b", "a", "main"), headAt("b")))
	}
}

func TestSyncReportState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report SyncReport
		state  SyncState
	}{
		{"not initialized", SyncReport{}, StateNotInitialized},
		{"up to date", SyncReport{Initialized: true, LocalCommit: "abc1234", RemoteCommit: "abc1234"}, StateUpToDate},
		{"local changes only", SyncReport{Initialized: true, ChangedFiles: []string{".zshrc"}}, StateLocalOnly},
		{"behind", SyncReport{Initialized: true, BehindCount: 3}, StateBehind},
		{"changes and behind", SyncReport{Initialized: true, ChangedFiles: []string{".zshrc"}, BehindCount: 2}, StateDiverged},
		{"ahead and behind", SyncReport{Initialized: true, AheadCount: 1, BehindCount: 1}, StateDiverged},
		{"ahead only", SyncReport{Initialized: true, AheadCount: 2}, StateAheadOnly},
		{"never pushed", SyncReport{Initialized: true, LocalCommit: "abc1234", RemoteBranchMissing: true}, StateRemoteMissing},
		{"unrelated history", SyncReport{Initialized: true, ChangedFiles: []string{"a"}, HistoryUnrelated: true}, StateDivergedUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.state, tt.report.State())
		})
	}
}
