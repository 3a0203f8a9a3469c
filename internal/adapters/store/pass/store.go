package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
)

const DefaultPrefix = "mrdriver/session"

const missingEntryMarker = "is not in the password store"

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps session values in the pass password store under prefix.
type Store struct {
	prefix string
	run    runFunc
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{prefix: prefix, run: runPassCommand}
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	_, err := s.pass(ctx, "set", key, value+"\n", "insert", "-m", "-f")
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	out, err := s.pass(ctx, "get", key, "", "show")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\r\n"), nil
}

func (s *Store) Clear(ctx context.Context, key string) error {
	_, err := s.pass(ctx, "clear", key, "", "rm", "-f")
	if errors.Is(err, domain.ErrSessionKeyNotFound) {
		return nil
	}
	return err
}

// pass runs one pass subcommand against the entry for key, which is always
// the final argument.
func (s *Store) pass(ctx context.Context, op, key, input string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entry := path.Join(s.prefix, key)
	stdout, stderr, err := s.run(ctx, input, append(args, entry)...)
	switch {
	case err == nil:
		return stdout, nil
	case strings.Contains(stderr, missingEntryMarker):
		return "", fmt.Errorf("pass %s %q: %w", op, entry, domain.ErrSessionKeyNotFound)
	case stderr == "":
		return "", fmt.Errorf("pass %s %q: %w", op, entry, err)
	default:
		return "", fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
	}
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	binary, err := exec.LookPath("pass")
	if errors.Is(err, exec.ErrNotFound) {
		return "", "", ErrUnavailable
	}
	if err != nil {
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
