// Package git is the gateway to the detached metadata store.
//
// The store is a bare repository whose work tree is the user's home
// directory. Every command names both explicitly with --git-dir and
// --work-tree, so nothing here depends on the process working directory.
// It provides:
//   - Store lifecycle (bare clone, bare init, remote and config setup)
//   - Ref queries through go-git (branches, HEAD, commit lookup)
//   - Work tree queries (tracked files, changed files, per-path diffs)
//   - Remote operations (fetch, push) bounded by NetworkTimeout
//
// This package should be the only place where git commands are executed.
package git
