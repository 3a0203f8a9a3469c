package cmd

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
)

// terminalNavigator records where the app would have navigated so commands
// can report it after they finish.
type terminalNavigator struct {
	logger *slog.Logger

	mu          sync.Mutex
	route       domain.Route
	routeSet    bool
	destination domain.Destination
}

var _ ports.Navigator = (*terminalNavigator)(nil)

func newTerminalNavigator(logger *slog.Logger) *terminalNavigator {
	return &terminalNavigator{logger: logger}
}

func (n *terminalNavigator) Reset(_ context.Context, route domain.Route) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.route = route
	n.routeSet = true
	n.destination = ""
	n.logger.Debug("navigation reset", "action", "navigate", "route", route)
	return nil
}

func (n *terminalNavigator) Navigate(_ context.Context, destination domain.Destination) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.destination = destination
	n.logger.Debug("navigated", "action", "navigate", "destination", destination)
	return nil
}

// Last reports the most recent reset route and pushed destination.
func (n *terminalNavigator) Last() (domain.Route, bool, domain.Destination) {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.route, n.routeSet, n.destination
}
