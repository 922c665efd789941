// Package cache persists external lookup results in a single JSON file.
//
// The file holds one JSON object mapping keys to arbitrary JSON values. It is
// read in full and rewritten in full on every update; entries never expire.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store is a durable key/value cache backed by one JSON object file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store for the file at path. The file is created lazily.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the raw JSON value cached under key.
func (s *Store) Get(key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, false, err
	}

	v, ok := entries[key]
	return v, ok, nil
}

// Put stores value under key. The whole file is read, merged and rewritten
// while holding the lock, so concurrent writers never lose each other's entries.
func (s *Store) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return err
	}
	entries[key] = data

	return s.writeAll(entries)
}

// Keys returns the cached keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// readAll loads the cache file. A missing or unparsable file is treated as an
// empty cache and rewritten as an empty object. Caller must hold s.mu.
func (s *Store) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	entries := make(map[string]json.RawMessage)
	if err == nil && len(data) > 0 {
		if jsonErr := json.Unmarshal(data, &entries); jsonErr == nil && entries != nil {
			return entries, nil
		}
		entries = make(map[string]json.RawMessage)
	}

	if err := s.writeAll(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// writeAll replaces the cache file atomically. Caller must hold s.mu.
func (s *Store) writeAll(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cache-*.json")
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing cache: %w", err)
	}

	return nil
}
