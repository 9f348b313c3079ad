package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInteractiveDisabled is returned when prompting is impossible: FRECKLE_NO_INTERACTIVE
// is set or there is no terminal
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled (FRECKLE_NO_INTERACTIVE is set or no terminal)")

var errCanceled = errors.New("canceled")

var (
	promptFrame  = lipgloss.NewStyle().Margin(1, 0)
	promptHint   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	promptCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// checkInteractiveAllowed returns an error if prompts cannot be shown
func checkInteractiveAllowed() error {
	if os.Getenv("FRECKLE_NO_INTERACTIVE") != "" || !IsTTY() {
		return ErrInteractiveDisabled
	}
	return nil
}

// runModel runs a prompt program to completion and returns its final model
func runModel[M tea.Model](m M) (M, error) {
	final, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout)).Run()
	if err != nil {
		return m, err
	}
	out, ok := final.(M)
	if !ok {
		return m, fmt.Errorf("unexpected model type %T", final)
	}
	return out, nil
}

// frame renders a prompt body with its key hint underneath
func frame(body, hint string) string {
	return promptFrame.Render(body + "\n\n" + promptHint.Render(hint))
}

// isCancel reports keys that abort every prompt
func isCancel(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc
}

type textInputModel struct {
	input  textinput.Model
	prompt string
	done   bool
	err    error
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isCancel(key):
			m.err, m.done = errCanceled, true
			return m, tea.Quit
		case key.Type == tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textInputModel) View() string {
	if m.done {
		return ""
	}
	return frame(m.prompt+"\n"+m.input.View(), "(Enter to submit, Ctrl+C to cancel)")
}

type confirmModel struct {
	prompt string
	choice bool
	done   bool
	err    error
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case isCancel(key):
		m.err, m.done = errCanceled, true
	case key.Type == tea.KeyEnter:
		m.done = true
	case key.Type == tea.KeyRunes:
		switch strings.ToLower(string(key.Runes)) {
		case "y", "yes":
			m.choice, m.done = true, true
		case "n", "no":
			m.choice, m.done = false, true
		}
	}
	if m.done {
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yesNo := "[y/N]"
	if m.choice {
		yesNo = "[Y/n]"
	}
	return frame(m.prompt+" "+yesNo, "(y or n, Enter for the default, Ctrl+C to cancel)")
}

// SelectOption represents an option in a selection prompt
type SelectOption struct {
	Label string // What to show
	Value string // Value to return
}

type selectModel struct {
	title    string
	options  []SelectOption
	cursor   int
	selected string
	done     bool
	err      error
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := len(m.options)
	switch {
	case isCancel(key):
		m.err, m.done = errCanceled, true
		return m, tea.Quit
	case key.Type == tea.KeyEnter:
		m.selected, m.done = m.options[m.cursor].Value, true
		return m, tea.Quit
	case key.Type == tea.KeyUp || key.Type == tea.KeyShiftTab:
		m.cursor = (m.cursor + n - 1) % n
	case key.Type == tea.KeyDown || key.Type == tea.KeyTab:
		m.cursor = (m.cursor + 1) % n
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.title))
	b.WriteString("\n")
	for i, opt := range m.options {
		if i == m.cursor {
			fmt.Fprintf(&b, "\n  → %s", promptCursor.Render(opt.Label))
		} else {
			fmt.Fprintf(&b, "\n    %s", opt.Label)
		}
	}
	return frame(b.String(), "(↑/↓ to move, Enter to confirm, Ctrl+C to cancel)")
}

// PromptTextInput asks for a line of text
func PromptTextInput(prompt, defaultValue string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	input := textinput.New()
	input.SetValue(defaultValue)
	input.Focus()
	input.CharLimit = 500
	input.Width = 80

	m, err := runModel(textInputModel{input: input, prompt: prompt})
	if err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	return strings.TrimSpace(m.input.Value()), nil
}

// PromptConfirm asks a yes/no question; Enter picks defaultValue
func PromptConfirm(prompt string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	m, err := runModel(confirmModel{prompt: prompt, choice: defaultValue})
	if err != nil {
		return false, err
	}
	if m.err != nil {
		return false, m.err
	}
	return m.choice, nil
}

// PromptSelect asks for one of options and returns its Value
func PromptSelect(title string, options []SelectOption, defaultIndex int) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	m, err := runModel(selectModel{title: title, options: options, cursor: defaultIndex})
	if err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	return m.selected, nil
}

// PromptMultiSelect asks the user to pick any number of options. The
// returned values keep the order of options.
func PromptMultiSelect(message string, options []string, defaults []string) ([]string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no options provided")
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message:  message,
		Options:  options,
		Default:  defaults,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	return selected, nil
}
