package ridetimer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/driver-partner-cli/internal/application"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedTimerModel = errors.New("unexpected final ride timer model type")

type Options struct {
	TickInterval time.Duration
	Input        io.Reader
	Output       io.Writer
}

// Result is the state the timer was left in when the program exited.
type Result struct {
	State application.RideTimerState
	// FinalSeconds is set only when the driver confirmed completion.
	FinalSeconds int
}

// tickMsg carries the timer state after a background tick.
type tickMsg application.RideTimerState

type model struct {
	timer  *application.RideTimer
	styles styles

	final int
	err   error
}

func newModel(timer *application.RideTimer) model {
	return model{
		timer:  timer,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.finished() {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "c", "enter":
		m.err = m.timer.RequestCompletion()
	case "y":
		final, err := m.timer.Confirm()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.final = final
		return m, tea.Quit
	case "n", "esc":
		m.err = m.timer.Cancel()
	case "a":
		if err := m.timer.Abort(); err != nil {
			m.err = err
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m model) finished() bool {
	switch m.timer.State().Phase {
	case application.RidePhaseCompleted, application.RidePhaseCancelled:
		return true
	default:
		return false
	}
}

func (m model) View() string {
	state := m.timer.State()

	title := "Ride in progress"
	if state.RideID != "" {
		title = fmt.Sprintf("Ride %s", state.RideID)
	}

	lines := []string{
		m.styles.title.Render(title),
		m.styles.clock.Render(state.Elapsed()),
	}

	switch state.Phase {
	case application.RidePhaseRunning:
		lines = append(lines, m.styles.phase.Render("running"), m.styles.help.Render("c complete · a abort · q quit"))
	case application.RidePhaseConfirming:
		lines = append(lines, m.styles.prompt.Render("Complete this ride?"), m.styles.help.Render("y confirm · n keep driving"))
	case application.RidePhaseCompleted:
		lines = append(lines, m.styles.done.Render(fmt.Sprintf("Ride completed in %s", state.Elapsed())))
	case application.RidePhaseCancelled:
		lines = append(lines, m.styles.aborted.Render("Ride cancelled"))
	default:
		lines = append(lines, m.styles.phase.Render("No ongoing ride"))
	}

	if m.err != nil {
		lines = append(lines, m.styles.errMsg.Render(m.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// Run shows the live ride timer until the ride is confirmed, aborted, or the
// driver quits.
func Run(ctx context.Context, timer *application.RideTimer, opts Options) (Result, error) {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(newModel(timer), programOpts...)

	tickCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		_ = timer.Run(tickCtx, opts.TickInterval, func(state application.RideTimerState) {
			p.Send(tickMsg(state))
		})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return Result{State: timer.State()}, err
	}

	result, ok := finalModel.(model)
	if !ok {
		return Result{State: timer.State()}, ErrUnexpectedTimerModel
	}

	return Result{State: timer.State(), FinalSeconds: result.final}, nil
}

// Summary is the one-line outcome printed after the program exits.
func Summary(result Result) string {
	switch result.State.Phase {
	case application.RidePhaseCompleted:
		return fmt.Sprintf("Ride completed in %s", result.State.Elapsed())
	case application.RidePhaseCancelled:
		return fmt.Sprintf("Ride cancelled after %s", result.State.Elapsed())
	case application.RidePhaseIdle:
		return "No ongoing ride"
	default:
		return strings.Join(strings.Fields(fmt.Sprintf("Ride %s still running at %s", result.State.RideID, result.State.Elapsed())), " ")
	}
}
