package ports

import (
	"context"

	"github.com/bnema/driver-partner-cli/internal/domain"
)

type Navigator interface {
	// Reset discards navigation history and lands on route.
	Reset(ctx context.Context, route domain.Route) error
	Navigate(ctx context.Context, destination domain.Destination) error
}
