package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
)

const DefaultTickInterval = time.Second

type RidePhase string

const (
	RidePhaseIdle       RidePhase = "idle"
	RidePhaseRunning    RidePhase = "running"
	RidePhaseConfirming RidePhase = "confirming"
	RidePhaseCompleted  RidePhase = "completed"
	RidePhaseCancelled  RidePhase = "cancelled"
)

var ErrInvalidRideTransition = errors.New("invalid ride timer transition")

type RideTimerState struct {
	Phase          RidePhase
	RideID         string
	StartedAt      time.Time
	ElapsedSeconds int
}

func (s RideTimerState) Elapsed() string {
	return domain.FormatElapsed(s.ElapsedSeconds)
}

// RideTimer tracks the elapsed time of the ongoing ride. Elapsed seconds only
// grow while running and stay frozen during completion confirmation.
type RideTimer struct {
	clock ports.Clock

	mu    sync.Mutex
	state RideTimerState
}

func NewRideTimer(clock ports.Clock) *RideTimer {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &RideTimer{
		clock: clock,
		state: RideTimerState{Phase: RidePhaseIdle},
	}
}

func (t *RideTimer) State() RideTimerState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Observe feeds the latest ride record. An ongoing ride starts an idle timer;
// a completed or cancelled ride resets it.
func (t *RideTimer) Observe(ride domain.RideRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case ride.Status == domain.RideOngoing && t.state.Phase == RidePhaseIdle:
		t.start(ride)
	case ride.Status.Terminal():
		t.state = RideTimerState{Phase: RidePhaseIdle}
	}
}

func (t *RideTimer) start(ride domain.RideRecord) {
	now := t.clock.Now()
	startedAt := ride.RideStartTime
	if startedAt.IsZero() || startedAt.After(now) {
		startedAt = now
	}

	rideID := ride.RideID
	if rideID == "" {
		rideID = ride.ID
	}

	t.state = RideTimerState{
		Phase:          RidePhaseRunning,
		RideID:         rideID,
		StartedAt:      startedAt,
		ElapsedSeconds: int(now.Sub(startedAt) / time.Second),
	}
}

// Tick advances the timer by one second and reports whether it was running.
func (t *RideTimer) Tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase != RidePhaseRunning {
		return false
	}
	t.state.ElapsedSeconds++
	return true
}

func (t *RideTimer) RequestCompletion() error {
	return t.transition(RidePhaseRunning, RidePhaseConfirming)
}

// Cancel backs out of the confirmation step; the timer resumes from the frozen
// value.
func (t *RideTimer) Cancel() error {
	return t.transition(RidePhaseConfirming, RidePhaseRunning)
}

func (t *RideTimer) Confirm() (int, error) {
	if err := t.transition(RidePhaseConfirming, RidePhaseCompleted); err != nil {
		return 0, err
	}
	return t.State().ElapsedSeconds, nil
}

func (t *RideTimer) Abort() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state.Phase {
	case RidePhaseRunning, RidePhaseConfirming:
		t.state.Phase = RidePhaseCancelled
		return nil
	default:
		return fmt.Errorf("%w: abort from %s", ErrInvalidRideTransition, t.state.Phase)
	}
}

// Run ticks every interval until ctx is done or the ride reaches a terminal
// phase. onTick, when set, receives the state after every tick.
func (t *RideTimer) Run(ctx context.Context, interval time.Duration, onTick func(RideTimerState)) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t.Tick()
			state := t.State()
			if onTick != nil {
				onTick(state)
			}
			if state.Phase == RidePhaseCompleted || state.Phase == RidePhaseCancelled {
				return nil
			}
		}
	}
}

func (t *RideTimer) transition(from, to RidePhase) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase != from {
		return fmt.Errorf("%w: %s to %s from %s", ErrInvalidRideTransition, from, to, t.state.Phase)
	}
	t.state.Phase = to
	return nil
}
