package auth

import "sync"

// MemoryStore keeps blobs in process memory. Tests inject failures through
// the *Error fields.
type MemoryStore struct {
	blobs map[string][]byte
	mu    sync.RWMutex

	ReadError  error
	WriteError error
	ClearError error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// ReadBlob returns a copy of the blob for key
func (m *MemoryStore) ReadBlob(key string) ([]byte, error) {
	if m.ReadError != nil {
		return nil, m.ReadError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if key == "" {
		return nil, ErrInvalidCredentials
	}
	blob, ok := m.blobs[key]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	return append([]byte(nil), blob...), nil
}

// WriteBlob stores a copy of blob under key
func (m *MemoryStore) WriteBlob(key string, blob []byte) error {
	if m.WriteError != nil {
		return m.WriteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if key == "" {
		return ErrInvalidCredentials
	}
	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}

// ClearBlob removes the blob for key
func (m *MemoryStore) ClearBlob(key string) error {
	if m.ClearError != nil {
		return m.ClearError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Len reports how many blobs are stored
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
