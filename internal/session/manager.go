// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/model"
)

// Fixed display strings for resolved sends.
const (
	// ServerErrorText replaces the typing placeholder when a send fails.
	ServerErrorText = "⚠️ Server error. Try again."

	// AttachmentPrefix marks a user message that carried a file.
	AttachmentPrefix = "📎 "
)

// ErrBusy is returned when a send is attempted while the active
// conversation still has an unresolved request. One request per
// conversation at a time.
var ErrBusy = errors.New("a request is already in flight for this conversation")

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the set of open conversations and the optimistic-send
// lifecycle. Sends are two-phase: Begin appends the pending/typing pair
// and hands back a request ID, then Resolve or Fail rewrites the pair
// once the network call settles. Resolutions are routed by request ID,
// so switching conversations mid-flight cannot misdeliver a reply.
type Manager struct {
	mu sync.Mutex

	convs  map[string]*model.Conversation
	active string

	// inflight maps a live request ID to its conversation key.
	inflight map[string]string
}

// NewManager creates a manager with the scratch conversation active.
func NewManager() *Manager {
	m := &Manager{
		convs:    make(map[string]*model.Conversation),
		inflight: make(map[string]string),
		active:   model.NewChatKey,
	}
	m.convs[model.NewChatKey] = model.NewConversation(model.NewChatKey)
	return m
}

// ActiveKey returns the key of the active conversation.
func (m *Manager) ActiveKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Active returns a snapshot of the active conversation's messages.
func (m *Manager) Active() []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv := m.convs[m.active]
	out := make([]model.Message, len(conv.Messages))
	copy(out, conv.Messages)
	return out
}

// SwitchTo makes key the active conversation, creating it if needed.
// In-flight requests in the previous conversation keep running.
func (m *Manager) SwitchTo(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.convs[key]; !ok {
		m.convs[key] = model.NewConversation(key)
	}
	m.active = key
}

// HasInFlight reports whether the active conversation has an
// unresolved request.
func (m *Manager) HasInFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.convs[m.active].HasInFlight()
}

// =============================================================================
// OPTIMISTIC SEND LIFECYCLE
// =============================================================================

// Begin starts a send in the active conversation: the user's text
// appears immediately as pending, followed by a typing placeholder.
// Returns the request ID that Resolve or Fail must quote, or ErrBusy
// if the conversation already has an unresolved request.
func (m *Manager) Begin(text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv := m.convs[m.active]
	if conv.HasInFlight() {
		return "", ErrBusy
	}

	requestID := uuid.NewString()
	conv.Append(
		model.NewPendingMessage(text, requestID),
		model.NewTypingMessage(requestID),
	)
	m.inflight[requestID] = m.active
	return requestID, nil
}

// BeginAttachment starts a file send. The optimistic user message shows
// the attachment marker plus the filename rather than file contents.
func (m *Manager) BeginAttachment(filename string) (string, error) {
	return m.Begin(AttachmentPrefix + filename)
}

// Resolve delivers a successful reply for a request ID. The resolution
// lands in whichever conversation issued the request, active or not.
// Stale or unknown request IDs are ignored and reported as false.
func (m *Manager) Resolve(requestID, reply string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := m.inflight[requestID]
	if !ok {
		return false
	}
	delete(m.inflight, requestID)
	return m.convs[key].Resolve(requestID, reply)
}

// Fail settles a request ID with the fixed server-error text. The
// pending user message stays pending; only the typing placeholder is
// rewritten.
func (m *Manager) Fail(requestID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := m.inflight[requestID]
	if !ok {
		return false
	}
	delete(m.inflight, requestID)
	return m.convs[key].Fail(requestID, ServerErrorText)
}

// =============================================================================
// HISTORY
// =============================================================================

// LoadHistory fetches and installs the server-side history for a
// conversation key. A failed fetch empties the conversation: stale
// messages from an earlier load must not outlive a refresh. The scratch
// conversation has no history behind it and is never fetched.
func (m *Manager) LoadHistory(ctx context.Context, client *api.Client, key string) error {
	if key == model.NewChatKey {
		return nil
	}

	entries, fetchErr := client.ChatHistory(ctx, key)
	var msgs []model.Message
	if fetchErr == nil {
		msgs = model.FlattenHistory(entries)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.convs[key]; !ok {
		m.convs[key] = model.NewConversation(key)
	}
	m.convs[key].Replace(msgs)
	return fetchErr
}
