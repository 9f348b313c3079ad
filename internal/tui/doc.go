// Package tui provides the terminal user interface for freckle.
//
// It handles:
//   - Console and rotating file logging (Splog)
//   - Interactive prompts (using bubbletea and survey)
//   - Progress spinners for network operations
//   - Terminal styling and colors (using lipgloss)
package tui
