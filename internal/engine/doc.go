// Package engine synchronizes a dotfiles work tree with its remote repository.
//
// It is the core of freckle, responsible for:
//   - Resolving the branch to use when the configured one is missing
//   - Classifying the sync state of the repository and of single files
//   - Checking the repository out without destroying pre-existing files
//   - Committing and publishing local edits with distinguishable outcomes
//
// The engine holds no state between calls. Every query goes back to the
// metadata store through a Gateway, so results always reflect the disk.
package engine
