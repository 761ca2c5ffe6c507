package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps every key in a single JSON document on disk. The whole
// document is rewritten on each change.
type FileStore struct {
	path string
	log  *slog.Logger

	mu     sync.RWMutex
	values map[string]string
}

// NewFileStore loads path if it exists. A file that cannot be decoded is
// treated as empty and replaced on the next write.
func NewFileStore(path string, log *slog.Logger) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage: file path is required")
	}
	if log == nil {
		log = slog.Default()
	}
	s := &FileStore{
		path:   path,
		log:    log,
		values: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key and rewrites the file.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.persistLocked()
}

// Delete removes key. Deleting a missing key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.persistLocked()
}

func (s *FileStore) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("storage: read %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return nil
	}
	var decoded map[string]string
	if err := json.Unmarshal(b, &decoded); err != nil {
		s.log.Warn("discarding unreadable storage file", "path", s.path, "error", err)
		return nil
	}
	for k, v := range decoded {
		s.values[k] = v
	}
	return nil
}

func (s *FileStore) persistLocked() error {
	b, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}
	// The document holds auth headers; keep it private to the user.
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("storage: write %s: %w", s.path, err)
	}
	return nil
}
