// Package config loads and persists freckle's user configuration.
//
// It handles:
//   - The ~/.freckle.yaml file, including migration of the legacy v1 layout
//   - Profiles and their explicit profile-to-branch mapping
//   - Resolution of the repository coordinates an invocation works against
package config
