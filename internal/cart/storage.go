package cart

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// StorageKey is the fixed key under which cart state is persisted, matching
// the browser widget's local-storage entry.
const StorageKey = "void_cart_v1"

// Storage persists the raw JSON-encoded cart payload. A Load that finds no
// stored payload returns (nil, nil).
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStorage persists the cart payload to a single file, the local-storage
// analog for a non-browser client.
type FileStorage struct {
	path string
}

// NewFileStorage creates a FileStorage keeping the payload at
// dir/<StorageKey>.json.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, StorageKey+".json")}
}

// Load reads the stored payload. A missing file is an empty cart.
func (s *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Save writes the payload, creating the directory if needed.
func (s *FileStorage) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// MemoryStorage keeps the payload in memory. Used in tests and for
// throwaway carts.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the stored payload.
func (s *MemoryStorage) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, nil
}

// Save stores the payload.
func (s *MemoryStorage) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}
