package store

import (
	"errors"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
)

// Store satisfies client.TokenStore so the SDK seeds its session from
// disk at startup and persists refreshed tokens.
var _ client.TokenStore = (*Store)(nil)

// Tokens returns the persisted token pair; either value may be empty.
func (s *Store) Tokens() (accessToken, refreshToken string) {
	if raw, err := s.get(keyAccessToken); err == nil {
		accessToken = string(raw)
	}
	if raw, err := s.get(keyRefreshToken); err == nil {
		refreshToken = string(raw)
	}
	return accessToken, refreshToken
}

// SetTokens persists the token pair.
func (s *Store) SetTokens(accessToken, refreshToken string) error {
	if err := s.put(keyAccessToken, []byte(accessToken)); err != nil {
		return err
	}
	return s.put(keyRefreshToken, []byte(refreshToken))
}

// Clear discards the tokens and the cached profile; called on logout and
// on failed token refresh.
func (s *Store) Clear() error {
	return s.delete(keyAccessToken, keyRefreshToken, keyProfile)
}

// SaveProfile caches the fetched user profile.
func (s *Store) SaveProfile(u *client.User) error {
	return s.putJSON(keyProfile, u)
}

// Profile returns the cached user profile, or ErrNoValue when the user
// has not signed in on this device.
func (s *Store) Profile() (*client.User, error) {
	var u client.User
	if err := s.getJSON(keyProfile, &u); err != nil {
		if errors.Is(err, ErrNoValue) {
			return nil, ErrNoValue
		}
		return nil, err
	}
	return &u, nil
}
