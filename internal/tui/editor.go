package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EditMessage opens the user's editor on initial and returns the result with
// lines starting with '#' removed and surrounding whitespace trimmed.
func EditMessage(initial string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	tmpFile, err := os.CreateTemp("", "freckle-message-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := tmpFile.WriteString(initial); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := runEditor(tmpFile.Name()); err != nil {
		return "", err
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return StripComments(string(content)), nil
}

// EditFile opens the user's editor on an existing file and waits for it to exit
func EditFile(path string) error {
	if err := checkInteractiveAllowed(); err != nil {
		return err
	}
	return runEditor(path)
}

func runEditor(path string) error {
	cmd := exec.Command("sh", "-c", editorCommand()+` "$1"`, "sh", path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

// StripComments drops '#' comment lines and trims the result
func StripComments(message string) string {
	var kept []string
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// editorCommand picks VISUAL, then EDITOR, then vi
func editorCommand() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor := os.Getenv(env); editor != "" {
			return editor
		}
	}
	return "vi"
}
