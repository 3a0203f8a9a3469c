package application

import "sync"

const DefaultEndThreshold = 0.5

// EndReachedGate lets one end-of-list signal through per scroll gesture.
type EndReachedGate struct {
	mu    sync.Mutex
	fired bool
}

func (g *EndReachedGate) GestureBegan() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.fired = false
}

func (g *EndReachedGate) Reached() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fired {
		return false
	}
	g.fired = true
	return true
}

// ScrollTrigger reports when the remaining distance to the end of the loaded
// content drops below threshold viewports.
type ScrollTrigger struct {
	gate      EndReachedGate
	threshold float64
}

func NewScrollTrigger(threshold float64) *ScrollTrigger {
	if threshold <= 0 {
		threshold = DefaultEndThreshold
	}
	return &ScrollTrigger{threshold: threshold}
}

func (t *ScrollTrigger) GestureBegan() {
	t.gate.GestureBegan()
}

func (t *ScrollTrigger) Scrolled(offset, viewport, content float64) bool {
	if viewport <= 0 {
		return false
	}

	distance := content - (offset + viewport)
	if distance >= t.threshold*viewport {
		return false
	}

	return t.gate.Reached()
}
