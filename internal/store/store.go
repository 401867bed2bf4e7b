// Package store persists the serialized progress snapshot. A store holds
// opaque bytes under one key; it knows nothing about the record's shape.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"finlearn/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a synchronous single-key snapshot store. Load reports found=false
// on first run.
type Store interface {
	Load() (data []byte, found bool, err error)
	Save(data []byte) error
}

// GormStore keeps the snapshot in the snapshots table.
type GormStore struct {
	db  *gorm.DB
	key string
}

// NewGormStore returns a Store backed by db under key.
func NewGormStore(db *gorm.DB, key string) *GormStore {
	return &GormStore{db: db, key: key}
}

// Load reads the snapshot row for the store key.
func (s *GormStore) Load() ([]byte, bool, error) {
	var snap models.Snapshot
	err := s.db.Where(&models.Snapshot{Key: s.key}).First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load snapshot %q: %w", s.key, err)
	}
	return []byte(snap.Data), true, nil
}

// Save upserts the snapshot row.
func (s *GormStore) Save(data []byte) error {
	snap := models.Snapshot{Key: s.key, Data: string(data)}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", s.key, err)
	}
	return nil
}

// FileStore keeps the snapshot in a JSON file. Writes go to a temp file in
// the same directory and are renamed over the target.
type FileStore struct {
	path string
}

// NewFileStore returns a Store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the snapshot file. A missing file is not an error.
func (s *FileStore) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, true, nil
}

// Save replaces the snapshot file atomically.
func (s *FileStore) Save(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore is an in-process Store, used by tests and ephemeral sessions.
type MemoryStore struct {
	mu      sync.Mutex
	data    []byte
	found   bool
	saves   int
	loadErr error
	saveErr error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved bytes.
func (s *MemoryStore) Load() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	if !s.found {
		return nil, false, nil
	}
	return append([]byte(nil), s.data...), true, nil
}

// Save stores a copy of data.
func (s *MemoryStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data = append([]byte(nil), data...)
	s.found = true
	s.saves++
	return nil
}

// Put seeds the store with raw bytes without counting a save.
func (s *MemoryStore) Put(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.found = true
}

// Saves reports how many successful saves happened.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailLoad makes subsequent loads return err; nil clears it.
func (s *MemoryStore) FailLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailSave makes subsequent saves return err; nil clears it.
func (s *MemoryStore) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}
