package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_GetWithoutSession(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestStore_SetThenGet(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("tok-1"))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)
}

func TestStore_SetReplacesPrevious(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("tok-1"))
	require.NoError(t, store.Set("tok-2"))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)
}

func TestStore_Clear(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("tok-1"))
	require.NoError(t, store.Clear())

	_, err := store.Get()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestStore_ClearWithoutSession(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.Clear())
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("tok-1"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)
}
