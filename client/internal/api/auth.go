package api

import (
	"context"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client/internal/types"
)

// Login authenticates with email and password.
func Login(ctx context.Context, hc HTTPClient, baseURL string, req types.LoginRequest) (*types.AuthResult, error) {
	var out types.AuthResult
	if err := postJSON(ctx, hc, baseURL, "/auth/login", "login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns the same envelope as Login.
func Register(ctx context.Context, hc HTTPClient, baseURL string, req types.RegisterRequest) (*types.AuthResult, error) {
	var out types.AuthResult
	if err := postJSON(ctx, hc, baseURL, "/auth/register", "register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginWithGoogle exchanges an identity-provider credential for tokens.
// The credential is opaque to this client.
func LoginWithGoogle(ctx context.Context, hc HTTPClient, baseURL string, req types.GoogleTokenRequest) (*types.AuthResult, error) {
	var out types.AuthResult
	if err := postJSON(ctx, hc, baseURL, "/auth/google/token", "google login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges the refresh token for a new access token.
func Refresh(ctx context.Context, hc HTTPClient, baseURL string, req types.RefreshRequest) (*types.RefreshResult, error) {
	var out types.RefreshResult
	if err := postJSON(ctx, hc, baseURL, "/auth/refresh", "refresh token", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the server-side session.
func Logout(ctx context.Context, hc HTTPClient, baseURL string) error {
	return postJSON(ctx, hc, baseURL, "/auth/logout", "logout", struct{}{}, nil)
}

// CurrentUser fetches the authenticated profile.
func CurrentUser(ctx context.Context, hc HTTPClient, baseURL string) (*types.User, error) {
	var out types.User
	if err := getJSON(ctx, hc, baseURL, "/auth/me", "get current user", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
