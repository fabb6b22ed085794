package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type joinDoneMsg struct {
	err error
}

type joinProgressMsg struct {
	joined int
}

type joinSpinnerModel struct {
	spinner  spinner.Model
	total    int
	joined   int
	progress <-chan int
	join     tea.Cmd
	err      error
	done     bool
}

func newJoinSpinnerModel(total int, progress <-chan int, join tea.Cmd) joinSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return joinSpinnerModel{
		spinner:  s,
		total:    total,
		progress: progress,
		join:     join,
	}
}

func (m joinSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.join, waitForProgress(m.progress))
}

func (m joinSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case joinProgressMsg:
		m.joined = msg.joined
		return m, waitForProgress(m.progress)
	case joinDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m joinSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s Joining accounts (%d/%d)...", m.spinner.View(), m.joined, m.total)
}

// waitForProgress returns nil once the channel is closed, which ends the
// progress loop without a message.
func waitForProgress(progress <-chan int) tea.Cmd {
	return func() tea.Msg {
		joined, ok := <-progress
		if !ok {
			return nil
		}
		return joinProgressMsg{joined: joined}
	}
}

func runJoinSpinner(ctx context.Context, output io.Writer, total int, progress <-chan int, join func() error) error {
	joinCmd := func() tea.Msg {
		return joinDoneMsg{err: join()}
	}

	p := tea.NewProgram(
		newJoinSpinnerModel(total, progress, joinCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(joinSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
