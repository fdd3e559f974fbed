package client

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/api"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"
)

// Login authenticates with email and password and stores the returned
// token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	res, err := api.Login(ctx, c.http, c.baseURL, req)
	if err != nil {
		logIfRateLimited("login", err)
		return nil, observe("login", err)
	}
	if err := c.tokens.SetTokens(res.AccessToken, res.RefreshToken); err != nil {
		return nil, err
	}
	return res, observe("login", nil)
}

// Register creates an account and stores the returned token pair.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	res, err := api.Register(ctx, c.http, c.baseURL, req)
	if err != nil {
		logIfRateLimited("register", err)
		return nil, observe("register", err)
	}
	if err := c.tokens.SetTokens(res.AccessToken, res.RefreshToken); err != nil {
		return nil, err
	}
	return res, observe("register", nil)
}

// LoginWithGoogle exchanges an identity-provider credential (opaque to
// this client) for a token pair.
func (c *Client) LoginWithGoogle(ctx context.Context, credential string) (*AuthResult, error) {
	res, err := api.LoginWithGoogle(ctx, c.http, c.baseURL, types.GoogleTokenRequest{Credential: credential})
	if err != nil {
		logIfRateLimited("google_login", err)
		return nil, observe("google_login", err)
	}
	if err := c.tokens.SetTokens(res.AccessToken, res.RefreshToken); err != nil {
		return nil, err
	}
	return res, observe("google_login", nil)
}

// Logout invalidates the server-side session and always clears local
// tokens, even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := api.Logout(ctx, c.http, c.baseURL)
	if clearErr := c.tokens.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	if err != nil {
		log.Debug().Err(err).Msg("logout: server call failed, local session cleared anyway")
	}
	return observe("logout", err)
}

// RefreshToken forces a token refresh now. Concurrent callers share one
// refresh call. On failure the local session is cleared and
// ErrSessionExpired is returned.
func (c *Client) RefreshToken(ctx context.Context) error {
	_, err := c.refresh.run(ctx)
	return observe("refresh_token", err)
}

// CurrentUser fetches the authenticated profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	u, err := api.CurrentUser(ctx, c.http, c.baseURL)
	if err != nil {
		logIfRateLimited("current_user", err)
		return nil, observe("current_user", err)
	}
	return u, observe("current_user", nil)
}

// logIfRateLimited records 429s with their retry-after hint. The SDK does
// not retry them; that is left to the caller.
func logIfRateLimited(operation string, err error) {
	if secs := RetryAfterSeconds(err); secs > 0 {
		log.Warn().Str("operation", operation).Int("retry_after_s", secs).Msg("rate limited by backend")
	}
}
