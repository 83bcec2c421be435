// Package services implements the typed REST client for the MedEase
// backend and the per-resource services built on top of it.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/medease/desktop/pkg/logger"
)

// CredentialSource is where the client reads the bearer token from and
// what it purges when the backend reports the session expired. The
// sqlite-backed store in core satisfies it.
type CredentialSource interface {
	// Token returns the stored credential, false when none is held.
	Token() (string, bool)
	// Purge removes the credential and the cached profile together.
	Purge() error
}

// Client issues authenticated JSON requests against the backend. It
// performs no retries; a failed call surfaces immediately and the
// caller decides whether to try again.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialSource
	// onUnauthorized runs after a 401 purge so the UI can swap back
	// to the login view. May be nil.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
// and custom timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient builds a client for the given backend base URL. creds may
// be nil for a client that never authenticates.
func NewClient(baseURL string, creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		creds:      creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler registers the hook invoked after a 401 has
// purged the session. Called from the bootstrap once the UI exists.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// Request performs method on endpoint. body, when non-nil, is sent as
// JSON; a 2xx JSON response is decoded into out when out is non-nil.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token, ok := c.creds.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log := logger.Get()
		log.Warn().Err(err).Str("endpoint", endpoint).Msg("request did not reach server")
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.expireSession(endpoint)
		return ErrAuthExpired
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return c.failure(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Request(ctx, http.MethodGet, endpoint, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Request(ctx, http.MethodPost, endpoint, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.Request(ctx, http.MethodPut, endpoint, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, nil)
}

// expireSession purges the credential pair and notifies the UI. The
// purge and the notification are the only side effects of the pipeline
// besides the network call itself.
func (c *Client) expireSession(endpoint string) {
	log := logger.Get()
	log.Info().Str("endpoint", endpoint).Msg("session rejected by backend, purging credentials")
	if c.creds != nil {
		if err := c.creds.Purge(); err != nil {
			log.Error().Err(err).Msg("failed to purge stored session")
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// failure turns a non-2xx response other than 401/403 into a
// RequestError carrying the backend message when one is present.
func (c *Client) failure(resp *http.Response) error {
	msg := resp.Status
	data, err := io.ReadAll(resp.Body)
	if err == nil && len(data) > 0 {
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.text() != "" {
			msg = eb.text()
		}
	}
	return &RequestError{StatusCode: resp.StatusCode, Message: msg}
}
