package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medease/desktop/internal/types"
)

func openTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	store, err := NewCredentialStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Open())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreEmpty(t *testing.T) {
	store := openTestStore(t)

	_, ok := store.Token()
	assert.False(t, ok)
	_, ok = store.Profile()
	assert.False(t, ok)

	// Purging an empty store is a no-op, not an error.
	require.NoError(t, store.Purge())
}

func TestStoreInertBeforeOpen(t *testing.T) {
	store, err := NewCredentialStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Token()
	assert.False(t, ok, "an unopened store holds no credential")
	_, ok = store.Profile()
	assert.False(t, ok)

	assert.ErrorIs(t, store.SetSession("tok", types.UserProfile{ID: "u1"}), errStoreNotOpen)
	assert.ErrorIs(t, store.SetProfile(types.UserProfile{ID: "u1"}), errStoreNotOpen)
	assert.ErrorIs(t, store.Purge(), errStoreNotOpen)
	require.NoError(t, store.Close())
}

func TestStoreSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)

	profile := types.UserProfile{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Role: "patient"}
	require.NoError(t, store.SetSession("tok-1", profile))

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-1", token)

	got, ok := store.Profile()
	require.True(t, ok)
	assert.Equal(t, profile, got)
}

func TestStoreReloginReplacesWholesale(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SetSession("first", types.UserProfile{ID: "u1", Role: "patient"}))
	require.NoError(t, store.SetSession("second", types.UserProfile{ID: "u2", Role: "doctor"}))

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "second", token, "only the most recent credential may remain")

	profile, ok := store.Profile()
	require.True(t, ok)
	assert.Equal(t, "u2", profile.ID, "no residue of the first session")
}

func TestStorePurgeRemovesPair(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SetSession("tok", types.UserProfile{ID: "u1", Role: "admin"}))
	require.NoError(t, store.Purge())

	_, ok := store.Token()
	assert.False(t, ok, "token must be gone after purge")
	_, ok = store.Profile()
	assert.False(t, ok, "profile must not survive a token wipe")
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCredentialStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Open())
	require.NoError(t, store.SetSession("tok", types.UserProfile{ID: "u1", Role: "doctor"}))
	require.NoError(t, store.Close())

	reopened, err := NewCredentialStore(dir)
	require.NoError(t, err)
	require.NoError(t, reopened.Open())
	defer reopened.Close()

	token, ok := reopened.Token()
	require.True(t, ok)
	assert.Equal(t, "tok", token)
}
