// Package style holds the lipgloss colors used in freckle's output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

func color(code, text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(code)).
		Render(text)
}

// ColorRed colors text red
func ColorRed(text string) string { return color("1", text) }

// ColorGreen colors text green
func ColorGreen(text string) string { return color("2", text) }

// ColorYellow colors text yellow
func ColorYellow(text string) string { return color("3", text) }

// ColorDim makes text dim/gray
func ColorDim(text string) string { return color("8", text) }

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return color("6", branchName+" (current)")
	}
	return color("12", branchName)
}

// ColorState colors a sync or file state: green when nothing needs doing,
// yellow for local work, red for anything that needs the remote, dim otherwise.
func ColorState(state string) string {
	switch state {
	case "up-to-date":
		return ColorGreen(state)
	case "local-changes", "modified", "ahead", "remote-missing", "untracked":
		return ColorYellow(state)
	case "behind", "diverged", "diverged-unknown", "missing", "error":
		return ColorRed(state)
	default:
		return ColorDim(state)
	}
}

// Bold renders text in bold
func Bold(text string) string {
	return lipgloss.NewStyle().Bold(true).Render(text)
}
