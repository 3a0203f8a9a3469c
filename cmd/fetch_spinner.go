package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pageProgress reports how far a multi-page fetch has come.
type pageProgress struct {
	page  int
	total int
	items int
}

type pageLoadedMsg pageProgress

type pagesDoneMsg struct {
	err error
}

type pageSpinner struct {
	spin     spinner.Model
	title    string
	progress pageProgress
	muted    lipgloss.Style
	err      error
	finished bool
}

func newPageSpinner(title string, total int) pageSpinner {
	return pageSpinner{
		spin: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		title:    title,
		progress: pageProgress{total: total},
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func (m pageSpinner) Init() tea.Cmd {
	return m.spin.Tick
}

func (m pageSpinner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case pageLoadedMsg:
		m.progress = pageProgress(msg)
		return m, nil
	case pagesDoneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m pageSpinner) View() string {
	if m.finished {
		return ""
	}

	line := fmt.Sprintf("%s Fetching %s...", m.spin.View(), m.title)
	if m.progress.page > 0 {
		line += " " + m.muted.Render(fmt.Sprintf("page %d/%d, %d items", m.progress.page, m.progress.total, m.progress.items))
	}
	return line
}

// runPagedFetch shows a spinner on output while fetch runs. fetch calls
// report after each page so the line can show progress.
func runPagedFetch(
	ctx context.Context,
	output io.Writer,
	title string,
	pages int,
	fetch func(ctx context.Context, report func(page, items int)) error,
) error {
	p := tea.NewProgram(
		newPageSpinner(title, pages),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	go func() {
		err := fetch(ctx, func(page, items int) {
			p.Send(pageLoadedMsg{page: page, total: pages, items: items})
		})
		p.Send(pagesDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}

	done, ok := final.(pageSpinner)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", final)
	}
	return done.err
}
