package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Store keeps one file per session key under root.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(path, value); err != nil {
		return fmt.Errorf("store session value %q: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()

	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("session value %q: %w", key, domain.ErrSessionKeyNotFound)
	case err != nil:
		return "", fmt.Errorf("read session value %q: %w", key, err)
	}
	return string(data), nil
}

// Clear is a no-op for keys that were never written.
func (s *Store) Clear(ctx context.Context, key string) error {
	path, err := s.resolve(ctx, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = os.Remove(path)
	s.mu.Unlock()

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session value %q: %w", key, err)
	}
	return nil
}

func (s *Store) resolve(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Clean(strings.TrimSpace(key))
	switch {
	case name == "." || name == "":
		return "", errors.New("session key is empty")
	case filepath.IsAbs(name), name == "..", strings.HasPrefix(name, ".."+string(filepath.Separator)):
		return "", fmt.Errorf("invalid session key %q", key)
	}
	return filepath.Join(s.root, name), nil
}

// writeAtomic replaces path via a temp file in the same directory. Readers
// see either the old value or the new one.
func writeAtomic(path, value string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	_, werr := tmp.WriteString(value)
	if werr == nil {
		werr = tmp.Chmod(filePerm)
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return werr
	}
	return os.Rename(tmp.Name(), path)
}
