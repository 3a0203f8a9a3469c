package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultViewportRows = 15
	chromeRows          = 3

	// gestureIdleGap separates two scroll gestures made with the same key.
	gestureIdleGap = 400 * time.Millisecond
)

var ErrUnexpectedBrowserModel = errors.New("unexpected final browser model type")

// Source is a paginated list the browser can page through.
type Source interface {
	LoadIfEmpty(ctx context.Context) (bool, error)
	LoadMore(ctx context.Context) (bool, error)
	Lines(now time.Time) []string
	Exhausted() bool
}

type Options struct {
	Title        string
	EndThreshold float64
	Input        io.Reader
	Output       io.Writer
	Now          func() time.Time
}

type loadedMsg struct {
	err error
}

type model struct {
	ctx     context.Context
	source  Source
	trigger *application.ScrollTrigger
	spinner spinner.Model
	styles  styles
	title   string
	now     func() time.Time

	height  int
	offset  int
	lines   []string
	loading bool
	err     error

	direction  int
	lastScroll time.Time
}

func newModel(ctx context.Context, source Source, opts Options) model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return model{
		ctx:     ctx,
		source:  source,
		trigger: application.NewScrollTrigger(opts.EndThreshold),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		styles: newStyles(),
		title:  opts.Title,
		now:    now,
		height: defaultViewportRows,
		lines:  source.Lines(now()),
	}
}

func (m model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.source.LoadMore(m.ctx)
		return loadedMsg{err: err}
	}
}

func (m model) firstLoadCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.source.LoadIfEmpty(m.ctx)
		return loadedMsg{err: err}
	}
}

func (m model) Init() tea.Cmd {
	switch {
	case m.source.Exhausted(), len(m.lines) > m.height:
		return nil
	case len(m.lines) == 0:
		return tea.Batch(m.spinner.Tick, m.firstLoadCmd())
	default:
		return tea.Batch(m.spinner.Tick, m.loadCmd())
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - chromeRows
		if m.height < 1 {
			m.height = 1
		}
		m.offset = m.clampOffset(m.offset)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case loadedMsg:
		before := len(m.lines)
		m.loading = false
		m.err = msg.err
		m.lines = m.source.Lines(m.now())
		m.offset = m.clampOffset(m.offset)

		// Grown content re-arms the end-of-list trigger.
		grew := len(m.lines) > before
		if grew {
			m.trigger.GestureBegan()
		}
		if m.err == nil && grew && !m.source.Exhausted() && len(m.lines) <= m.height {
			return m.startLoad()
		}
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "r":
		if m.err != nil {
			return m.startLoad()
		}
		return m, nil
	case "down", "j":
		m = m.scrollTo(m.offset+1, 1)
	case "up", "k":
		m = m.scrollTo(m.offset-1, -1)
	case "pgdown", " ", "f":
		m = m.scrollTo(m.offset+m.height, 1)
	case "pgup", "b":
		m = m.scrollTo(m.offset-m.height, -1)
	case "end", "G":
		m = m.scrollTo(len(m.lines), 1)
	case "home", "g":
		m = m.scrollTo(0, -1)
	default:
		return m, nil
	}

	if m.trigger.Scrolled(float64(m.offset), float64(m.height), float64(len(m.lines))) {
		return m.startLoad()
	}
	return m, nil
}

// scrollTo moves the viewport. A key in a new direction, or one after an idle
// gap, starts a new gesture; held keys keep extending the current one.
func (m model) scrollTo(offset, direction int) model {
	now := m.now()
	if direction != m.direction || m.lastScroll.IsZero() || now.Sub(m.lastScroll) > gestureIdleGap {
		m.trigger.GestureBegan()
	}
	m.direction = direction
	m.lastScroll = now
	m.offset = m.clampOffset(offset)
	return m
}

func (m model) startLoad() (tea.Model, tea.Cmd) {
	if m.loading || m.source.Exhausted() {
		return m, nil
	}
	m.loading = true
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m model) clampOffset(offset int) int {
	maxOffset := len(m.lines) - m.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (m model) View() string {
	end := m.offset + m.height
	if end > len(m.lines) {
		end = len(m.lines)
	}

	out := []string{m.styles.title.Render(m.title)}
	out = append(out, m.lines[m.offset:end]...)
	out = append(out, m.footer())
	return strings.Join(out, "\n")
}

func (m model) footer() string {
	switch {
	case m.loading:
		return fmt.Sprintf("%s %s", m.spinner.View(), m.styles.footer.Render("Loading more..."))
	case m.err != nil:
		return m.styles.errorMsg.Render(domain.UserMessage(m.err)) + m.styles.footer.Render("  r retry · q quit")
	case m.source.Exhausted():
		return m.styles.footer.Render(fmt.Sprintf("%d lines · end of list · q quit", len(m.lines)))
	default:
		return m.styles.footer.Render("↑/↓ scroll · pgdn page · q quit")
	}
}

// Browse runs an interactive pager over source until the user quits.
func Browse(ctx context.Context, source Source, opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	finalModel, err := tea.NewProgram(newModel(ctx, source, opts), programOpts...).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(model)
	if !ok {
		return ErrUnexpectedBrowserModel
	}
	return result.err
}
