package auth

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
)

// FileStore keeps one plain file per account under dir, named after the
// slugified account key.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file backing key
func (f *FileStore) Path(key string) string {
	name := slug.Make(key)
	if name == "" {
		name = "default"
	}
	return filepath.Join(f.dir, name+".txt")
}

// ReadBlob reads the session file for key
func (f *FileStore) ReadBlob(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidCredentials
	}

	file, err := os.Open(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(blob) == 0 {
		return nil, ErrCredentialsNotFound
	}
	return blob, nil
}

// WriteBlob atomically replaces the session file for key
func (f *FileStore) WriteBlob(key string, blob []byte) error {
	if key == "" {
		return ErrInvalidCredentials
	}
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("failed to set session file mode: %w", err)
	}

	return os.Rename(tmp.Name(), f.Path(key))
}

// ClearBlob removes the session file for key
func (f *FileStore) ClearBlob(key string) error {
	if key == "" {
		return ErrInvalidCredentials
	}
	err := os.Remove(f.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
