package config

// Coordinates identify the repository an invocation works against.
// They are resolved once and not modified afterwards.
type Coordinates struct {
	// RepoURL is the remote repository; empty for a store created locally
	RepoURL string
	// StoreDir is the absolute path of the bare metadata store
	StoreDir string
	// WorkTree is the home directory the store checks files out into
	WorkTree string
	// Branch is the configured branch before resolution
	Branch string
}
