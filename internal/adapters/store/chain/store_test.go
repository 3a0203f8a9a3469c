package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/driver-partner-cli/internal/domain"
	portmocks "github.com/bnema/driver-partner-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "access_token").Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), "access_token")
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "access_token").Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, "access_token").Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), "access_token")
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetKeepsNotFoundWhenBothBackendsMiss(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "profile").Return("", domain.ErrSessionKeyNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, "profile").Return("", domain.ErrSessionKeyNotFound).Once()

	_, err := store.Get(context.Background(), "profile")
	require.ErrorIs(t, err, domain.ErrSessionKeyNotFound)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "access_token").Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, "access_token").Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), "access_token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreSetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Set(mock.Anything, "access_token", "token-1").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Set(mock.Anything, "access_token", "token-1").Return(nil).Once()

	require.NoError(t, store.Set(context.Background(), "access_token", "token-1"))
}

func TestStoreSetDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Set(mock.Anything, "access_token", "token-1").Return(nil).Once()

	require.NoError(t, store.Set(context.Background(), "access_token", "token-1"))
}

func TestStoreClearClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Clear(mock.Anything, "access_token").Return(nil).Once()
	fallback.EXPECT().Clear(mock.Anything, "access_token").Return(nil).Once()

	require.NoError(t, store.Clear(context.Background(), "access_token"))
}

func TestStoreClearSucceedsWhenOneBackendClears(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Clear(mock.Anything, "access_token").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Clear(mock.Anything, "access_token").Return(nil).Once()

	require.NoError(t, store.Clear(context.Background(), "access_token"))
}

func TestStoreClearFailsWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Clear(mock.Anything, "access_token").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Clear(mock.Anything, "access_token").Return(errors.New("file failed")).Once()

	err := store.Clear(context.Background(), "access_token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend clear failed")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSessionStore(t)
	fallback := portmocks.NewMockSessionStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "access_token").Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), "access_token")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockSessionStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockSessionStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}
