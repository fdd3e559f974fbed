// Package client is the SDK for the Inner Voice companion backend. It is
// the single outbound surface used by every other component: it attaches
// the current access token to each request, refreshes it once (single
// flight) on expired authorization, and reduces every failure to one
// uniform error shape.
package client

import (
	"errors"
	"net/http"
	"time"
)

// Client talks to the companion backend. Construct with New; safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	refresh *refresher
}

// New constructs a Client for the backend at baseURL. Additional knobs are
// provided via functional options. Without WithTokenStore the client keeps
// tokens in memory only.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.tokens == nil {
		c.tokens = NewMemoryTokenStore()
	}

	c.refresh = newRefresher(c.baseURL, c.tokens, c.http.Timeout)
	c.wrapTransport()
	return c, nil
}

// wrapTransport installs the bearer/refresh wrapper as the outermost
// transport, above any debug transport installed by options.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &authTransport{
		base:    base,
		tokens:  c.tokens,
		refresh: c.refresh,
	}
}

// Authenticated reports whether an access token is currently held.
func (c *Client) Authenticated() bool {
	access, _ := c.tokens.Tokens()
	return access != ""
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }
