package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCreds is an in-memory CredentialSource for pipeline tests.
type fakeCreds struct {
	token  string
	purged bool
}

func (f *fakeCreds) Token() (string, bool) { return f.token, f.token != "" }
func (f *fakeCreds) Purge() error {
	f.token = ""
	f.purged = true
	return nil
}

func TestClientAuthorizationHeader(t *testing.T) {
	t.Run("token present", func(t *testing.T) {
		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, &fakeCreds{token: "abc"})
		require.NoError(t, client.Get(context.Background(), "/x", nil))
		assert.Equal(t, "Bearer abc", got)
	})

	t.Run("no token omits header", func(t *testing.T) {
		var got string
		var present bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			_, present = r.Header["Authorization"]
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, &fakeCreds{})
		require.NoError(t, client.Get(context.Background(), "/x", nil))
		assert.False(t, present, "Authorization header should be absent, got %q", got)
	})
}

func TestClientContentType(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	require.NoError(t, client.Post(context.Background(), "/x", map[string]string{"a": "b"}, nil))
	assert.Equal(t, "application/json", got)
}

func TestClientUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	creds := &fakeCreds{token: "stale"}
	hookCalled := false
	client := NewClient(server.URL, creds)
	client.SetUnauthorizedHandler(func() { hookCalled = true })

	err := client.Get(context.Background(), "/x", nil)
	require.ErrorIs(t, err, ErrAuthExpired)
	assert.True(t, creds.purged, "credential pair should be purged on 401")
	_, ok := creds.Token()
	assert.False(t, ok, "no credential should remain after 401")
	assert.True(t, hookCalled, "unauthorized hook should fire")
}

func TestClientForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	creds := &fakeCreds{token: "still-good"}
	client := NewClient(server.URL, creds)

	err := client.Get(context.Background(), "/x", nil)
	require.ErrorIs(t, err, ErrForbidden)
	assert.False(t, creds.purged, "403 must not purge the credential")
	token, ok := creds.Token()
	require.True(t, ok)
	assert.Equal(t, "still-good", token)
}

func TestClientRequestFailed(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"slot already taken"}`, "slot already taken"},
		{"error field", `{"error":"department not found"}`, "department not found"},
		{"no body falls back to status line", ``, "400 Bad Request"},
		{"non-JSON body falls back to status line", `<html>oops</html>`, "400 Bad Request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			err := client.Get(context.Background(), "/x", nil)

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
			assert.Equal(t, tc.want, reqErr.Message)
		})
	}
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable host

	client := NewClient(server.URL, nil)
	err := client.Get(context.Background(), "/x", nil)
	require.ErrorIs(t, err, ErrNetwork)

	var reqErr *RequestError
	assert.False(t, errors.As(err, &reqErr), "transport failure must not look like a server rejection")
}

func TestClientDecodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"a1","role":"doctor"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	var out struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, client.Get(context.Background(), "/x", &out))
	assert.Equal(t, "a1", out.ID)
	assert.Equal(t, "doctor", out.Role)
}

func TestClientMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	var out map[string]any
	err := client.Get(context.Background(), "/x", &out)
	require.ErrorIs(t, err, ErrMalformedResponse)
}
