// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the client-side persistence layer for chatdeck.
//
// All durable client state (the auth token, the demo API-key list) goes
// through the Store interface so that components never reach for global
// state directly and tests can substitute an in-memory store.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/chatdeck-tui/internal/util"
)

// Well-known storage keys.
const (
	// KeyAuthToken holds the session token issued at login.
	KeyAuthToken = "auth_token"

	// KeyAPIKeys holds the locally simulated API-key list (demo feature).
	KeyAPIKeys = "api_keys"
)

// ErrNotFound indicates the requested key has never been set.
var ErrNotFound = errors.New("storage: key not found")

// Store is the persistence contract. Get returns ErrNotFound for absent
// keys; Set and Delete are idempotent.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore persists each key as a file under a base directory.
// Writes are atomic (temp file + rename) so a crash never leaves a
// half-written token behind.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a store rooted at baseDir, creating it if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, err
	}
	return &FileStore{baseDir: baseDir}, nil
}

// DefaultDir returns the default chatdeck state directory (~/.chatdeck).
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".chatdeck"), nil
}

// Get reads the value stored for key.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set writes the value for key atomically. Mode 0600: the token is a
// credential.
func (s *FileStore) Set(key string, value []byte) error {
	return util.AtomicWriteFile(s.path(key), value, 0600)
}

// Delete removes the value for key. Deleting an absent key is not an error.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.baseDir, key)
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

// Get returns the value for key, or ErrNotFound.
func (s *MemStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value for key.
func (s *MemStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	return nil
}

// Delete removes key.
func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
