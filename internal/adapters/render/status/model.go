package status

import (
	"errors"
	"io"
	"strings"

	"github.com/bnema/driver-partner-cli/internal/application"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type cardReadyMsg struct{}

// card lays the status out as a header plus body sections.
type card struct {
	status   application.Status
	opts     RenderOptions
	styles   styles
	sections []string
}

func (c card) Init() tea.Cmd {
	return func() tea.Msg { return cardReadyMsg{} }
}

func (c card) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(cardReadyMsg); !ok {
		return c, nil
	}

	c.sections = append(c.header(), c.body()...)
	return c, tea.Quit
}

func (c card) View() string {
	if len(c.sections) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, c.sections...)
}

func (c card) header() []string {
	return []string{
		c.styles.title.Render("Driver Partner"),
		c.styles.header.Render("screen: " + screenLabel(c.status.Screen)),
	}
}

func (c card) body() []string {
	if !c.status.SignedIn() {
		return []string{c.styles.empty.Render("Not signed in. Run `dp signin` or `dp signup` to start.")}
	}

	body := []string{c.styles.section.Render(renderDriver(c.status, c.opts, c.styles))}
	if c.opts.Details && c.status.Profile != nil {
		body = append(body, c.styles.section.Render(renderDetails(*c.status.Profile, c.styles)))
	}
	return body
}

// Render draws the status card once and returns it without a trailing newline.
func Render(status application.Status, opts RenderOptions) (string, error) {
	final, err := tea.NewProgram(
		card{status: status, opts: opts, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	).Run()
	if err != nil {
		return "", err
	}

	drawn, ok := final.(card)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return strings.TrimRight(drawn.View(), "\n"), nil
}
