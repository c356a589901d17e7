package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "igclient"
	keyringPrefix  = "session_"
)

// KeyringStore keeps session blobs in the system keychain
type KeyringStore struct{}

// NewKeyringStore creates a keyring store after probing that the keychain works
func NewKeyringStore() (*KeyringStore, error) {
	testKey := "test_availability"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		return nil, fmt.Errorf("%w: keyring not available: %v", ErrStoreUnavailable, err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &KeyringStore{}, nil
}

// ReadBlob gets the blob for key from the keychain
func (k *KeyringStore) ReadBlob(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidCredentials
	}

	data, err := keyring.Get(keyringService, keyringPrefix+key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to retrieve from keyring: %w", err)
	}
	return []byte(data), nil
}

// WriteBlob saves the blob for key in the keychain
func (k *KeyringStore) WriteBlob(key string, blob []byte) error {
	if key == "" {
		return ErrInvalidCredentials
	}
	if err := keyring.Set(keyringService, keyringPrefix+key, string(blob)); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}
	return nil
}

// ClearBlob removes the blob for key from the keychain
func (k *KeyringStore) ClearBlob(key string) error {
	if key == "" {
		return ErrInvalidCredentials
	}
	err := keyring.Delete(keyringService, keyringPrefix+key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
