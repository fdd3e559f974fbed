package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to
// discover all available knobs at a glance.

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied before the bearer/refresh transport wrapper is
// installed, so transport-related options (like debug logging) sit
// underneath it. Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// The same timeout applies uniformly to every backend call, including the
// token refresh; there is no per-operation override. The value must be
// greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithTokenStore supplies a persistent token store (e.g. the on-device
// store) instead of the in-memory default.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) error {
		if ts == nil {
			return fmt.Errorf("token store must not be nil")
		}
		c.tokens = ts
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response
// is logged when enabled is true.
//
// The debug transport is installed beneath the bearer wrapper. Do not
// enable in production: dumps include headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}
