package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medease/desktop/internal/auth"
	"github.com/medease/desktop/internal/types"
	"github.com/medease/desktop/services"
)

func newSessionFixture(t *testing.T, handler http.Handler) (*SessionManager, *CredentialStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := openTestStore(t)
	client := services.NewClient(server.URL, store)
	return NewSessionManager(store, services.NewAuthService(client)), store
}

func TestResolveWithoutTokenSkipsNetwork(t *testing.T) {
	calls := 0
	mgr, _ := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	sess := mgr.Resolve(context.Background())
	assert.Equal(t, auth.Unauthenticated, sess.State)
	assert.Equal(t, types.RoleUnknown, sess.Role())
	assert.Zero(t, calls, "no credential means nothing to resolve")
}

func TestResolveCachesProfile(t *testing.T) {
	mgr, store := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/profile", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"u1","firstName":"Ada","role":"doctor"}`))
	}))
	require.NoError(t, store.SetSession("tok", types.UserProfile{}))

	sess := mgr.Resolve(context.Background())
	require.Equal(t, auth.Authenticated, sess.State)
	assert.Equal(t, types.RoleDoctor, sess.Role())

	cached, ok := store.Profile()
	require.True(t, ok)
	assert.Equal(t, "u1", cached.ID)
}

func TestResolvePurgesUnattributableToken(t *testing.T) {
	mgr, store := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	require.NoError(t, store.SetSession("tok", types.UserProfile{ID: "u1"}))

	sess := mgr.Resolve(context.Background())
	assert.Equal(t, auth.Unauthenticated, sess.State)

	_, ok := store.Token()
	assert.False(t, ok, "a token without a resolvable profile is purged")
	_, ok = store.Profile()
	assert.False(t, ok)
}

func TestResolveAfterExpiredSession(t *testing.T) {
	mgr, store := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, store.SetSession("stale", types.UserProfile{ID: "u1"}))

	sess := mgr.Resolve(context.Background())
	assert.Equal(t, auth.Unauthenticated, sess.State)

	_, ok := store.Token()
	assert.False(t, ok, "the 401 purge leaves no credential behind")
	_, ok = store.Profile()
	assert.False(t, ok, "no profile may survive the purge")
}

func TestLoginEstablishesSession(t *testing.T) {
	mgr, store := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-9","user":{"id":"u9","firstName":"Lin","role":"patient"}}`))
	}))

	profile, err := mgr.Login(context.Background(), "lin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u9", profile.ID)

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-9", token)
}

func TestSequentialLoginsKeepOnlySecond(t *testing.T) {
	tokens := []string{"first", "second"}
	i := 0
	mgr, store := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"` + tokens[i] + `","user":{"id":"u` + tokens[i] + `","role":"patient"}}`))
		i++
	}))

	_, err := mgr.Login(context.Background(), "a@b.com", "pw1")
	require.NoError(t, err)
	_, err = mgr.Login(context.Background(), "c@d.com", "pw2")
	require.NoError(t, err)

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "second", token)
	profile, ok := store.Profile()
	require.True(t, ok)
	assert.Equal(t, "usecond", profile.ID, "no residue of the first session")
}

func TestLogoutPurges(t *testing.T) {
	mgr, store := newSessionFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	require.NoError(t, store.SetSession("tok", types.UserProfile{ID: "u1"}))

	require.NoError(t, mgr.Logout())
	_, ok := store.Token()
	assert.False(t, ok)
	_, ok = store.Profile()
	assert.False(t, ok)
}
