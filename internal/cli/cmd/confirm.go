package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/newtab/internal/cli/styles"
)

// actionState represents the current state of a confirmed action.
type actionState int

const (
	actionStateConfirm actionState = iota
	actionStateRunning
	actionStateDone
)

// actionFunc performs the confirmed action and returns the text to print.
type actionFunc func() (string, error)

// actionModel asks for confirmation, then runs an action behind a spinner.
type actionModel struct {
	spinner spinner.Model
	theme   *styles.Theme
	confirm styles.ConfirmModel
	state   actionState
	action  actionFunc

	result   string
	err      error
	quitting bool
}

// actionResultMsg is sent when the action completes.
type actionResultMsg struct {
	output string
	err    error
}

func newActionModel(theme *styles.Theme, question string, action actionFunc) actionModel {
	return actionModel{
		spinner: styles.NewDefaultSpinner(theme),
		theme:   theme,
		confirm: styles.NewConfirm(theme, question),
		state:   actionStateConfirm,
		action:  action,
	}
}

func (m actionModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m actionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case actionResultMsg:
		m.state = actionStateDone
		m.result, m.err = msg.output, msg.err
		return m, tea.Quit
	}

	if m.state == actionStateConfirm {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)

		if m.confirm.Done() {
			if m.confirm.Result() {
				m.state = actionStateRunning
				return m, m.run()
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, cmd
	}

	return m, nil
}

func (m actionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.err != nil:
		return m.theme.ErrorStyle.Render("Error: " + m.err.Error())
	case m.state == actionStateDone:
		return m.result
	case m.state == actionStateRunning:
		return m.theme.LoadingView(m.spinner.View(), "Working...")
	default:
		return m.confirm.View()
	}
}

func (m actionModel) run() tea.Cmd {
	action := m.action
	return func() tea.Msg {
		out, err := action()
		return actionResultMsg{output: out, err: err}
	}
}

// confirmAndRun runs action directly when yes is set, otherwise behind an
// interactive confirmation.
func confirmAndRun(out io.Writer, theme *styles.Theme, yes bool, question string, action actionFunc) error {
	if yes {
		result, err := action()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, result)
		return nil
	}

	p := tea.NewProgram(newActionModel(theme, question, action), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if m, ok := final.(actionModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
