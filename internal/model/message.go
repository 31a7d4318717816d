// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE STATE
// =============================================================================

// State is the delivery state of a message. It replaces the sentinel
// strings the browser console used ("pending" role, "___typing___"
// content) with an explicit variant so resolution logic can switch
// exhaustively instead of string-matching.
type State int

const (
	// StateSent is a confirmed message with real content. History loads
	// and resolved sends always land here.
	StateSent State = iota

	// StatePending is an optimistically displayed user message that the
	// server has not yet confirmed.
	StatePending

	// StateTyping is the in-flight assistant placeholder rendered as a
	// loading indicator instead of text.
	StateTyping

	// StateFailed is an assistant slot whose request failed; Content
	// carries the user-visible error string.
	StateFailed
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateSent:
		return "sent"
	case StatePending:
		return "pending"
	case StateTyping:
		return "typing"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// InFlight reports whether the state is transient. Every in-flight
// message must eventually be rewritten to StateSent or StateFailed;
// no resolution path leaves one behind.
func (s State) InFlight() bool {
	return s == StatePending || s == StateTyping
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single message in a conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	State     State     `json:"state"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// RequestID ties optimistic messages to the network request that
	// will resolve them. Empty for confirmed messages. Stale
	// resolutions (a request ID no longer in flight) are ignored.
	RequestID string `json:"-"`
}

// NewUserMessage creates a confirmed user message.
func NewUserMessage(content string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleUser,
		State:     StateSent,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates a confirmed assistant message.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		State:     StateSent,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewPendingMessage creates the optimistic user message for a send.
func NewPendingMessage(content, requestID string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleUser,
		State:     StatePending,
		Content:   content,
		Timestamp: time.Now(),
		RequestID: requestID,
	}
}

// NewTypingMessage creates the in-flight assistant placeholder for a send.
func NewTypingMessage(requestID string) Message {
	return Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		State:     StateTyping,
		Timestamp: time.Now(),
		RequestID: requestID,
	}
}

// Preview returns a truncated preview of the message content.
// Rune-based so multi-byte characters are never split.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
