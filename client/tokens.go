package client

import "sync"

// TokenStore holds the access/refresh token pair. Implementations must be
// safe for concurrent use; the on-device store in the store package
// persists tokens across runs, while the in-memory default does not.
type TokenStore interface {
	// Tokens returns the current pair. Either value may be empty.
	Tokens() (accessToken, refreshToken string)
	// SetTokens replaces the pair.
	SetTokens(accessToken, refreshToken string) error
	// Clear discards both tokens.
	Clear() error
}

// memoryTokenStore is the default, process-lifetime token holder.
type memoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryTokenStore returns a TokenStore that keeps tokens in memory.
func NewMemoryTokenStore() TokenStore { return &memoryTokenStore{} }

func (m *memoryTokenStore) Tokens() (string, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access, m.refresh
}

func (m *memoryTokenStore) SetTokens(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

func (m *memoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	return nil
}
