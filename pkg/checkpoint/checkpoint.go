package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/gosimple/slug"

	"igclient/pkg/logger"
)

const currentVersion = 1

// Checkpoint is the resumable state of one listing
type Checkpoint struct {
	Listing   string    `json:"listing"`
	Key       string    `json:"key"`
	Cursor    string    `json:"cursor"`
	Offset    int       `json:"offset,omitempty"`
	Items     int       `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// Store keeps checkpoints as JSON files in a directory
type Store struct {
	dir    string
	logger logger.Logger
	now    func() time.Time
}

// NewStore creates a store rooted at dir, creating it if needed
func NewStore(dir string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}
	return &Store{dir: dir, logger: log.WithField("component", "checkpoint"), now: time.Now}, nil
}

// Path returns the file holding the checkpoint of listing/key
func (s *Store) Path(listing, key string) string {
	return filepath.Join(s.dir, slug.Make(listing+"-"+key)+".checkpoint.json")
}

// Load returns the checkpoint of listing/key, or nil when there is none
func (s *Store) Load(listing, key string) (*Checkpoint, error) {
	data, err := os.ReadFile(s.Path(listing, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}

	s.logger.DebugWithFields("checkpoint loaded", map[string]interface{}{
		"listing": cp.Listing,
		"key":     cp.Key,
		"cursor":  cp.Cursor,
		"offset":  cp.Offset,
		"items":   cp.Items,
	})
	return &cp, nil
}

// Record stores cursor as the resume point of listing/key, adding items to
// the running total. offset counts the items after cursor that were already
// returned.
func (s *Store) Record(listing, key, cursor string, offset, items int) (*Checkpoint, error) {
	cp, err := s.Load(listing, key)
	if err != nil {
		s.logger.WithError(err).Warn("replacing unreadable checkpoint")
	}
	if cp == nil {
		cp = &Checkpoint{Listing: listing, Key: key, CreatedAt: s.now(), Version: currentVersion}
	}

	cp.Cursor = cursor
	cp.Offset = offset
	cp.Items += items
	if err := s.Save(cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// Save writes cp atomically
func (s *Store) Save(cp *Checkpoint) error {
	cp.UpdatedAt = s.now()

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	path := s.Path(cp.Listing, cp.Key)
	tempPath := path + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create temporary checkpoint file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync checkpoint file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close checkpoint file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace checkpoint file: %w", err)
	}

	s.logger.DebugWithFields("checkpoint saved", map[string]interface{}{
		"listing": cp.Listing,
		"key":     cp.Key,
		"cursor":  cp.Cursor,
	})
	return nil
}

// Delete removes the checkpoint of listing/key. A missing one is not an error.
func (s *Store) Delete(listing, key string) error {
	if err := os.Remove(s.Path(listing, key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	return nil
}
