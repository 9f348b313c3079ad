package tui

import (
	"os"

	"github.com/adrg/xdg"
)

// GetLogFilePath returns the path to the log file.
// If FRECKLE_LOG_FILE is set, uses that path.
// Otherwise, uses $XDG_STATE_HOME/freckle/freckle.log
func GetLogFilePath() string {
	if customPath := os.Getenv("FRECKLE_LOG_FILE"); customPath != "" {
		return customPath
	}

	path, err := xdg.StateFile("freckle/freckle.log")
	if err != nil {
		return "freckle.log"
	}
	return path
}
