package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "chessctl-cli"
)

// getKeyringKey returns a unique key for storing session tokens per server
func getKeyringKey(server string) string {
	return fmt.Sprintf("session-%s", server)
}

// KeyringStore persists session tokens in the OS keychain/credential manager,
// so a login survives between CLI invocations
type KeyringStore struct{}

// NewKeyringStore returns a TokenStore backed by the OS keyring
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

// SaveToken stores the token for server
func (k *KeyringStore) SaveToken(server, token string) error {
	if err := keyring.Set(service, getKeyringKey(server), token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken retrieves the token for server
func (k *KeyringStore) LoadToken(server string) (string, error) {
	token, err := keyring.Get(service, getKeyringKey(server))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotAuthenticated
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the token for server
func (k *KeyringStore) DeleteToken(server string) error {
	if err := keyring.Delete(service, getKeyringKey(server)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
