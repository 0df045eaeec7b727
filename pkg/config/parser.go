package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// SettingsStore is a read-only view of the host's settings
type SettingsStore interface {
	// Lookup returns the stored value for key. A stored JSON null counts as absent.
	Lookup(key string) (any, bool)
}

// MapStore is a static SettingsStore
type MapStore map[string]any

// Lookup implements SettingsStore
func (m MapStore) Lookup(key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// FileStore reads the host's JSON settings file on every lookup so edits made in
// the UI apply to the next upload. A missing file yields no settings.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the host settings file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the settings file location
func (s *FileStore) Path() string { return s.path }

// Lookup implements SettingsStore
func (s *FileStore) Lookup(key string) (any, bool) {
	settings, err := ParseSettings(s.path)
	if err != nil {
		return nil, false
	}
	return settings.Lookup(key)
}

// Snapshot reads the file once and returns a static copy, so a whole
// UploadConfig is resolved from a single consistent read. A missing file is
// not an error; a truncated or unreadable one is.
func (s *FileStore) Snapshot() (MapStore, error) {
	settings, err := ParseSettings(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return MapStore{}, nil
	}
	return settings, err
}

// ParseSettings reads and parses a host settings file
func ParseSettings(path string) (MapStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer file.Close()

	settings := MapStore{}
	if err := json.NewDecoder(file).Decode(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return settings, nil
}
