package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
)

type PushRouter struct {
	navigator ports.Navigator
	logger    *slog.Logger
}

func NewPushRouter(navigator ports.Navigator, logger *slog.Logger) *PushRouter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PushRouter{navigator: navigator, logger: logger}
}

// Handle routes a tapped push notification. Types without a destination are
// ignored.
func (r *PushRouter) Handle(ctx context.Context, payload domain.PushPayload) error {
	destination, ok := domain.PushDestination(payload)
	if !ok {
		r.logger.Debug("ignoring push notification", "action", "push", "type", payload.Type)
		return nil
	}

	if err := r.navigator.Navigate(ctx, destination); err != nil {
		return fmt.Errorf("navigate to %s: %w", destination, err)
	}
	return nil
}

// DecodePushPayload reads a {type, ...fields} data object. Non-string field
// values are kept in their JSON form.
func DecodePushPayload(data []byte) (domain.PushPayload, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.PushPayload{}, fmt.Errorf("decode push payload: %w", err)
	}

	payload := domain.PushPayload{Fields: make(map[string]string, len(raw))}
	for key, value := range raw {
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			text = string(value)
		}
		if key == "type" {
			payload.Type = text
			continue
		}
		payload.Fields[key] = text
	}

	return payload, nil
}
