// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a freckle command (status, add, log, restore,
// etc.) and orchestrates operations across the engine, the restore-point
// store and the terminal UI. Larger commands live in subpackages.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Engine, Splog, and other dependencies
//   - Actions are stateless; all state lives in the metadata store and the config file
//   - Actions handle user interaction through the tui package
package actions
