package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Step is one unit of work shown with a spinner while it runs
type Step struct {
	Label string
	// Run does the work and may return a short detail shown after completion
	Run func() (string, error)
}

type stepStatus int

const (
	stepPending stepStatus = iota
	stepRunning
	stepDone
	stepFailed
)

type stepState struct {
	Step
	status stepStatus
	detail string
	err    error
}

// stepResultMsg is sent when a single step completes
type stepResultMsg struct {
	idx    int
	detail string
	err    error
}

// StepsModel is the bubbletea model for step progress
type StepsModel struct {
	steps    []stepState
	current  int
	spinner  spinner.Model
	done     bool
	quitting bool
	styles   stepStyles
}

type stepStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	dimStyle     lipgloss.Style
}

// NewStepsModel creates a model that runs steps in order, stopping at the first failure
func NewStepsModel(steps []Step) StepsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	states := make([]stepState, len(steps))
	for i, step := range steps {
		states[i] = stepState{Step: step}
	}

	return StepsModel{
		steps:   states,
		spinner: s,
		styles: stepStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			labelStyle:   lipgloss.NewStyle().Bold(true),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (m StepsModel) runStep(idx int) tea.Cmd {
	run := m.steps[idx].Run
	return func() tea.Msg {
		detail, err := run()
		return stepResultMsg{idx: idx, detail: detail, err: err}
	}
}

func (m StepsModel) Init() tea.Cmd {
	if len(m.steps) == 0 {
		return tea.Quit
	}
	m.steps[0].status = stepRunning
	return tea.Batch(m.spinner.Tick, m.runStep(0))
}

func (m StepsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepResultMsg:
		step := &m.steps[msg.idx]
		step.detail = msg.detail
		step.err = msg.err
		if msg.err != nil {
			step.status = stepFailed
			m.done = true
			return m, tea.Quit
		}
		step.status = stepDone

		m.current++
		if m.current < len(m.steps) {
			m.steps[m.current].status = stepRunning
			return m, tea.Batch(m.spinner.Tick, m.runStep(m.current))
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m StepsModel) View() string {
	var b strings.Builder
	for _, step := range m.steps {
		var icon string
		switch step.status {
		case stepPending:
			icon = m.styles.dimStyle.Render("○")
		case stepRunning:
			icon = m.spinner.View()
		case stepDone:
			icon = m.styles.doneStyle.Render("✓")
		case stepFailed:
			icon = m.styles.errorStyle.Render("✗")
		}

		line := fmt.Sprintf("  %s %s", icon, m.styles.labelStyle.Render(step.Label))
		if step.status == stepDone && step.detail != "" {
			line += " " + m.styles.dimStyle.Render(step.detail)
		}
		if step.status == stepFailed {
			line += " " + m.styles.errorStyle.Render(step.err.Error())
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// err returns the first step failure, or an error if the user interrupted
func (m StepsModel) err() error {
	for _, step := range m.steps {
		if step.err != nil {
			return step.err
		}
	}
	if m.quitting && !m.done {
		return fmt.Errorf("canceled")
	}
	return nil
}

// RunSteps runs steps in order with a spinner when attached to a terminal,
// and as plain log lines otherwise. It returns the first failure.
func RunSteps(steps []Step, splog *Splog) error {
	if !IsTTY() || splog.IsQuiet() {
		return runStepsSimple(steps, splog)
	}

	p := tea.NewProgram(NewStepsModel(steps), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if model, ok := final.(StepsModel); ok {
		return model.err()
	}
	return fmt.Errorf("unexpected model type")
}

// runStepsSimple is the non-interactive version for pipes and CI
func runStepsSimple(steps []Step, splog *Splog) error {
	for _, step := range steps {
		splog.Debug("  ⋯ %s...", step.Label)
		detail, err := step.Run()
		if err != nil {
			splog.Info("  ✗ %s failed: %v", step.Label, err)
			return err
		}
		if detail != "" {
			splog.Info("  ✓ %s %s", step.Label, detail)
		} else {
			splog.Info("  ✓ %s", step.Label)
		}
	}
	return nil
}

// IsTTY returns true if we can use a TTY for interactive TUI
func IsTTY() bool {
	// First check if stdin/stdout are terminals
	if !((isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))) {
		return false
	}
	// Also try to open /dev/tty to verify it's actually available
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
