// Package store provides the local key/value persistence used for the auth
// token, the cached user, the anonymous analytics id, and the watchlist.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys. Carried over from the web client's local storage so the
// persisted state stays recognizable.
const (
	KeyAuthToken = "auth_token"
	KeyUser      = "user"
	KeyUserID    = "stonk_user_id"
	KeyWatchlist = "stonk_watchlist"
)

// Store is a JSON-file-backed key/value store. Every mutation rewrites the
// whole file; a single process is assumed, matching the original client's
// single-tab assumption. Values are stored as raw JSON per key.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
}

// Open loads (or initializes) the store file at <dir>/state.json.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	s := &Store{
		path: filepath.Join(dir, "state.json"),
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("parse state file: %w", err)
		}
	}
	return s, nil
}

// Get unmarshals the value stored under key into out. It reports whether
// the key existed and decoded cleanly.
func (s *Store) Get(key string, out interface{}) bool {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// GetString is a convenience for plain-string keys such as the auth token.
func (s *Store) GetString(key string) string {
	var v string
	if !s.Get(key, &v) {
		return ""
	}
	return v
}

// Set marshals v and rewrites the store file.
func (s *Store) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flushLocked()
}

// Remove deletes key and rewrites the store file. Removing a missing key is
// a no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "state-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp state: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}
