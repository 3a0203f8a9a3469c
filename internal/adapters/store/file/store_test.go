package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "session key is empty"},
		{name: "whitespace", key: "   ", wantErr: "session key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid session key"},
		{name: "traversal", key: "../escape", wantErr: "invalid session key"},
		{name: "deep traversal", key: "../../token", wantErr: "invalid session key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Set(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreSetGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Set(context.Background(), "access_token", "token-1"))
	require.NoError(t, store.Set(context.Background(), "access_token", "token-2"))

	got, err := store.Get(context.Background(), "access_token")
	require.NoError(t, err)
	assert.Equal(t, "token-2", got)

	info, err := os.Stat(filepath.Join(root, "access_token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStoreGetMissingKeyReportsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "profile")
	require.ErrorIs(t, err, domain.ErrSessionKeyNotFound)
}

func TestStoreClearIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Set(context.Background(), "access_token", "token-1"))

	require.NoError(t, store.Clear(context.Background(), "access_token"))
	require.NoError(t, store.Clear(context.Background(), "access_token"))

	_, err := store.Get(context.Background(), "access_token")
	require.ErrorIs(t, err, domain.ErrSessionKeyNotFound)
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore(t.TempDir()).Set(ctx, "access_token", "token-1")
	require.ErrorIs(t, err, context.Canceled)
}
