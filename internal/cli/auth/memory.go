package auth

import "sync"

// MemoryStore keeps session tokens for the lifetime of the process.
// It is safe for concurrent use; when two writers race, the last write to
// complete wins.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

// SaveToken stores the token for server, replacing any previous one
func (m *MemoryStore) SaveToken(server, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[server] = token
	return nil
}

// LoadToken returns the token for server or ErrNotAuthenticated
func (m *MemoryStore) LoadToken(server string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	token, ok := m.tokens[server]
	if !ok || token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

// DeleteToken forgets the token for server; a missing token is not an error
func (m *MemoryStore) DeleteToken(server string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, server)
	return nil
}
