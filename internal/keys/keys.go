// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package keys manages the demonstration API keys.
//
// The backend has no key endpoints; keys are generated and kept
// entirely client-side so the key screen has real data to render.
// They grant nothing.
package keys

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/chatdeck-tui/internal/storage"
)

// ErrKeyNotFound is returned when revoking an unknown key ID.
var ErrKeyNotFound = errors.New("key not found")

// Key is one generated API key.
type Key struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Secret   string    `json:"secret"`
	Created  time.Time `json:"created"`
	LastUsed time.Time `json:"last_used"`
}

// Masked returns the secret with only the prefix and last four
// characters visible, for list rendering.
func (k Key) Masked() string {
	if len(k.Secret) <= 8 {
		return k.Secret
	}
	return k.Secret[:3] + "..." + k.Secret[len(k.Secret)-4:]
}

// Manager persists the key list through the storage layer.
type Manager struct {
	backend storage.Store
}

// NewManager creates a manager over a storage backend.
func NewManager(backend storage.Store) *Manager {
	return &Manager{backend: backend}
}

// List returns all keys, oldest first. A missing record is an empty
// list, not an error.
func (m *Manager) List() ([]Key, error) {
	data, err := m.backend.Get(storage.KeyAPIKeys)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var ks []Key
	if err := json.Unmarshal(data, &ks); err != nil {
		return nil, fmt.Errorf("failed to parse stored keys: %w", err)
	}
	return ks, nil
}

// Generate creates, persists, and returns a new key. Names are
// sequential ("Key 1", "Key 2", ...) over the current list length.
func (m *Manager) Generate() (Key, error) {
	ks, err := m.List()
	if err != nil {
		return Key{}, err
	}

	secret, err := newSecret()
	if err != nil {
		return Key{}, err
	}
	now := time.Now()
	k := Key{
		ID:       newID(),
		Name:     fmt.Sprintf("Key %d", len(ks)+1),
		Secret:   secret,
		Created:  now,
		LastUsed: now,
	}

	ks = append(ks, k)
	if err := m.save(ks); err != nil {
		return Key{}, err
	}
	return k, nil
}

// Revoke deletes a key by ID.
func (m *Manager) Revoke(id string) error {
	ks, err := m.List()
	if err != nil {
		return err
	}
	kept := ks[:0]
	for _, k := range ks {
		if k.ID != id {
			kept = append(kept, k)
		}
	}
	if len(kept) == len(ks) {
		return ErrKeyNotFound
	}
	return m.save(kept)
}

func (m *Manager) save(ks []Key) error {
	data, err := json.Marshal(ks)
	if err != nil {
		return fmt.Errorf("failed to encode keys: %w", err)
	}
	return m.backend.Set(storage.KeyAPIKeys, data)
}

// newSecret returns a key string in the conventional "sk-" shape.
func newSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate key material: %w", err)
	}
	return "sk-" + hex.EncodeToString(buf), nil
}

func newID() string {
	buf := make([]byte, 6)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
