package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/driver-partner-cli/internal/adapters/store/file"
	passstore "github.com/bnema/driver-partner-cli/internal/adapters/store/pass"
	"github.com/bnema/driver-partner-cli/internal/ports"
)

// Store reads and writes through primary and falls back when it fails.
type Store struct {
	primary  ports.SessionStore
	fallback ports.SessionStore
}

var _ ports.SessionStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary session store is nil")
	errNilFallbackStore = errors.New("fallback session store is nil")
)

// NewStore panics on nil backends. Use NewStoreChecked for wiring that
// depends on runtime configuration.
func NewStore(primary, fallback ports.SessionStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}
	return store
}

func NewStoreChecked(primary, fallback ports.SessionStore) (*Store, error) {
	switch {
	case primary == nil:
		return nil, errNilPrimaryStore
	case fallback == nil:
		return nil, errNilFallbackStore
	}
	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(passPrefix, fileRoot string) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(passPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	_, err := withFallback(s, "set", func(b ports.SessionStore) (struct{}, error) {
		return struct{}{}, b.Set(ctx, key, value)
	})
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return withFallback(s, "get", func(b ports.SessionStore) (string, error) {
		return b.Get(ctx, key)
	})
}

// Clear removes key from both backends, so a value that landed in the
// fallback is gone after sign-out too. It fails only when neither backend
// cleared the key.
func (s *Store) Clear(ctx context.Context, key string) error {
	err := s.primary.Clear(ctx, key)
	if isContextErr(err) {
		return err
	}

	fallbackErr := s.fallback.Clear(ctx, key)
	if err == nil || fallbackErr == nil {
		return nil
	}
	return combine("clear", err, fallbackErr)
}

func withFallback[T any](s *Store, op string, call func(ports.SessionStore) (T, error)) (T, error) {
	value, err := call(s.primary)
	if err == nil || isContextErr(err) {
		return value, err
	}

	value, fallbackErr := call(s.fallback)
	if fallbackErr == nil {
		return value, nil
	}

	var zero T
	return zero, combine(op, err, fallbackErr)
}

func combine(op string, primaryErr, fallbackErr error) error {
	return fmt.Errorf("primary backend %s failed: %w; fallback backend %s failed: %w", op, primaryErr, op, fallbackErr)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
