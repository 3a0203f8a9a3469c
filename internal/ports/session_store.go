package ports

import "context"

const (
	SessionKeyAccessToken = "access_token"
	SessionKeyProfile     = "profile"
)

// SessionStore persists session values across restarts. Get returns
// domain.ErrSessionKeyNotFound for keys that were never set or were cleared.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Clear(ctx context.Context, key string) error
}
