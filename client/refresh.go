package client

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/api"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"
)

// authTransport attaches the current access token to outgoing requests and,
// on a 401, performs one refresh-and-replay. Concurrent 401s share a single
// refresh call through the refresher; each individual request replays at
// most once.
type authTransport struct {
	base    http.RoundTripper
	tokens  TokenStore
	refresh *refresher
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	access, refreshTok := t.tokens.Tokens()

	out := req
	if access != "" {
		out = req.Clone(req.Context())
		out.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || refreshTok == "" || authExempt(req.URL.Path) {
		return resp, nil
	}
	if req.GetBody == nil && req.Body != nil {
		// Cannot replay a consumed streaming body.
		return resp, nil
	}

	newAccess, refreshErr := t.refresh.run(req.Context())
	if refreshErr != nil {
		// Surface the original 401; the refresher has already cleared
		// the local session.
		return resp, nil
	}

	// Drain the 401 before replaying so the connection can be reused.
	_ = resp.Body.Close()

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+newAccess)
	return t.base.RoundTrip(retry)
}

// authExempt reports whether a path must never trigger a token refresh.
// All auth endpoints except /auth/me are exempt: a 401 from login or from
// the refresh call itself is an answer, not an expired session.
func authExempt(path string) bool {
	if !strings.HasPrefix(path, "/auth/") {
		return false
	}
	return path != "/auth/me"
}

// refresher serializes token refreshes. The first 401 handler starts the
// HTTP call; every handler arriving while it is in flight waits for the
// same outcome instead of issuing its own refresh.
type refresher struct {
	baseURL string
	http    *http.Client // deliberately plain: no auth transport underneath
	tokens  TokenStore

	mu       sync.Mutex
	inflight chan struct{} // non-nil while a refresh is running; closed on completion
	token    string
	err      error
}

func newRefresher(baseURL string, tokens TokenStore, timeout time.Duration) *refresher {
	return &refresher{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// run returns the new access token, either by performing the refresh or by
// waiting on the one already in flight. On failure the local session is
// cleared and every waiter receives the same error.
func (r *refresher) run(ctx context.Context) (string, error) {
	r.mu.Lock()
	if ch := r.inflight; ch != nil {
		r.mu.Unlock()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ch:
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.token, r.err
	}
	ch := make(chan struct{})
	r.inflight = ch
	r.mu.Unlock()

	token, err := r.doRefresh(ctx)

	r.mu.Lock()
	r.token, r.err = token, err
	r.inflight = nil
	r.mu.Unlock()
	close(ch)

	return token, err
}

func (r *refresher) doRefresh(ctx context.Context) (string, error) {
	_, refreshTok := r.tokens.Tokens()
	if refreshTok == "" {
		_ = r.tokens.Clear()
		tokenRefreshesTotal.WithLabelValues("no_refresh_token").Inc()
		return "", ErrSessionExpired
	}

	res, err := api.Refresh(ctx, r.http, r.baseURL, types.RefreshRequest{RefreshToken: refreshTok})
	if err != nil {
		log.Debug().Err(err).Msg("token refresh failed, clearing session")
		_ = r.tokens.Clear()
		tokenRefreshesTotal.WithLabelValues("failure").Inc()
		return "", ErrSessionExpired
	}

	if err := r.tokens.SetTokens(res.AccessToken, refreshTok); err != nil {
		return "", err
	}
	tokenRefreshesTotal.WithLabelValues("success").Inc()
	return res.AccessToken, nil
}
