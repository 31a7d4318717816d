// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin manages the administrator account roster.
//
// The roster is server-owned; this package keeps a local snapshot and
// refreshes it after every mutation so the view never renders a guess.
// Destructive operations are two-phase: deletion must be staged and
// then confirmed before anything is sent to the server.
package admin

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jeranaias/chatdeck-tui/internal/api"
)

// ErrNoPendingDelete is returned when ConfirmDelete is called without a
// staged deletion.
var ErrNoPendingDelete = errors.New("no deletion is staged")

// Manager holds the admin roster snapshot and the staged-deletion state.
type Manager struct {
	client *api.Client

	mu            sync.Mutex
	admins        []api.Admin
	pendingDelete string
}

// NewManager creates a manager over an API client. The roster starts
// empty; call Refresh before rendering.
func NewManager(client *api.Client) *Manager {
	return &Manager{client: client}
}

// Refresh replaces the snapshot with the server's current roster.
func (m *Manager) Refresh(ctx context.Context) error {
	admins, err := m.client.ListAdmins(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.admins = admins
	m.mu.Unlock()
	return nil
}

// Admins returns a copy of the roster snapshot.
func (m *Manager) Admins() []api.Admin {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.Admin, len(m.admins))
	copy(out, m.admins)
	return out
}

// refreshAfterMutation re-fetches the roster after a mutation already
// succeeded. A refresh failure here is logged, not returned: the
// mutation stands and the next Refresh will reconcile the snapshot.
func (m *Manager) refreshAfterMutation(ctx context.Context) {
	if err := m.Refresh(ctx); err != nil {
		log.Printf("admin: roster refresh after mutation failed: %v", err)
	}
}

// Create registers a new administrator and refreshes the roster.
// The error from the create call is always surfaced to the caller.
func (m *Manager) Create(ctx context.Context, username, password string, avatar *api.AvatarUpload) error {
	if err := m.client.CreateAdmin(ctx, username, password, avatar); err != nil {
		return err
	}
	m.refreshAfterMutation(ctx)
	return nil
}

// UpdatePassword changes an administrator's password and refreshes the
// roster.
func (m *Manager) UpdatePassword(ctx context.Context, username, password string) error {
	if err := m.client.UpdateAdminPassword(ctx, username, password); err != nil {
		return err
	}
	m.refreshAfterMutation(ctx)
	return nil
}

// =============================================================================
// TWO-PHASE DELETION
// =============================================================================

// StageDelete marks username for deletion. Nothing is sent to the
// server until ConfirmDelete.
func (m *Manager) StageDelete(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingDelete = username
}

// PendingDelete returns the username staged for deletion, or "".
func (m *Manager) PendingDelete() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingDelete
}

// CancelDelete clears the staged deletion.
func (m *Manager) CancelDelete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingDelete = ""
}

// ConfirmDelete deletes the staged administrator and refreshes the
// roster. The stage is cleared whether or not the delete succeeds; a
// failed delete must be re-staged deliberately.
func (m *Manager) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	username := m.pendingDelete
	m.pendingDelete = ""
	m.mu.Unlock()

	if username == "" {
		return ErrNoPendingDelete
	}
	if err := m.client.DeleteAdmin(ctx, username); err != nil {
		return err
	}
	m.refreshAfterMutation(ctx)
	return nil
}
