package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"igclient/pkg/config"
)

// CredentialStore persists opaque session blobs keyed by account name. A
// missing blob is reported as ErrCredentialsNotFound.
type CredentialStore interface {
	// ReadBlob returns the blob stored under key
	ReadBlob(key string) ([]byte, error)

	// WriteBlob replaces the blob stored under key
	WriteBlob(key string, blob []byte) error

	// ClearBlob removes the blob stored under key. Clearing a missing blob is not an error.
	ClearBlob(key string) error
}

// Errors
var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)

// Manager chains credential stores. Reads fall through until a store has the
// blob, writes go to the first store that accepts them and clears reach every store.
type Manager struct {
	stores []CredentialStore
}

// NewManager creates a manager over stores in priority order
func NewManager(stores ...CredentialStore) *Manager {
	return &Manager{stores: stores}
}

// NewStore builds the store chain selected by cfg. The environment store is
// always appended so that a session exported as IGCLIENT_SESSIONID can be reused.
func NewStore(cfg *config.SessionConfig) (*Manager, error) {
	var primary CredentialStore

	switch cfg.Store {
	case config.StoreFile, "":
		dir := cfg.Directory
		if dir == "" {
			var err error
			if dir, err = getConfigDir(); err != nil {
				return nil, fmt.Errorf("failed to get config directory: %w", err)
			}
		}
		primary = NewFileStore(dir)
	case config.StoreEncrypted:
		dir := cfg.Directory
		if dir == "" {
			var err error
			if dir, err = getConfigDir(); err != nil {
				return nil, fmt.Errorf("failed to get config directory: %w", err)
			}
		}
		store, err := NewEncryptedFileStore(filepath.Join(dir, "sessions.enc"), "")
		if err != nil {
			return nil, fmt.Errorf("failed to create encrypted store: %w", err)
		}
		primary = store
	case config.StoreKeyring:
		store, err := NewKeyringStore()
		if err != nil {
			return nil, err
		}
		primary = store
	case config.StoreMemory:
		primary = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}

	return NewManager(primary, NewEnvironmentStore()), nil
}

// ReadBlob returns the blob from the first store that has it
func (m *Manager) ReadBlob(key string) ([]byte, error) {
	var lastErr error
	for _, store := range m.stores {
		blob, err := store.ReadBlob(key)
		if err == nil {
			return blob, nil
		}
		if !errors.Is(err, ErrCredentialsNotFound) {
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("failed to read session: %w", lastErr)
	}
	return nil, ErrCredentialsNotFound
}

// WriteBlob saves the blob using the first store that accepts it
func (m *Manager) WriteBlob(key string, blob []byte) error {
	if key == "" {
		return ErrInvalidCredentials
	}

	var lastErr error
	for _, store := range m.stores {
		err := store.WriteBlob(key, blob)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store session: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// ClearBlob removes the blob from every store that supports removal
func (m *Manager) ClearBlob(key string) error {
	var errs []error
	for _, store := range m.stores {
		if err := store.ClearBlob(key); err != nil && !errors.Is(err, ErrStoreUnavailable) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// getConfigDir returns the per-user configuration directory
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "igclient")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "igclient")
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "igclient")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "igclient")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// MaskSecret masks all but the first 4 and last 4 characters of a secret
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
