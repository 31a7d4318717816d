// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// NewChatKey is the reserved conversation key for the scratch
// conversation that has no server-side history behind it.
const NewChatKey = "new-chat"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the ordered message list for one conversation key.
// The key is either NewChatKey or an admin's username (a proxy for that
// admin's conversation with the system).
type Conversation struct {
	Key       string    `json:"key"`
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewConversation creates an empty conversation for a key.
func NewConversation(key string) *Conversation {
	return &Conversation{
		Key:       key,
		Messages:  make([]Message, 0),
		UpdatedAt: time.Now(),
	}
}

// Append adds messages in order.
func (c *Conversation) Append(msgs ...Message) {
	c.Messages = append(c.Messages, msgs...)
	c.UpdatedAt = time.Now()
}

// Replace swaps the entire message list, as a history load does.
func (c *Conversation) Replace(msgs []Message) {
	c.Messages = msgs
	c.UpdatedAt = time.Now()
}

// Last returns the most recent message, or nil if empty.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// HasInFlight reports whether any message is still pending or typing.
func (c *Conversation) HasInFlight() bool {
	for i := range c.Messages {
		if c.Messages[i].State.InFlight() {
			return true
		}
	}
	return false
}

// Resolve rewrites the optimistic pair for requestID after a successful
// send: the pending user message is confirmed in place and the typing
// placeholder receives the assistant content. Returns false if no
// message carried the request ID (a stale resolution).
func (c *Conversation) Resolve(requestID, content string) bool {
	matched := false
	for i := range c.Messages {
		if c.Messages[i].RequestID != requestID {
			continue
		}
		switch c.Messages[i].State {
		case StatePending:
			c.Messages[i].State = StateSent
			c.Messages[i].RequestID = ""
			matched = true
		case StateTyping:
			c.Messages[i].State = StateSent
			c.Messages[i].Content = content
			c.Messages[i].RequestID = ""
			matched = true
		}
	}
	if matched {
		c.UpdatedAt = time.Now()
	}
	return matched
}

// Fail rewrites the typing placeholder for requestID to a failed
// assistant message carrying errText. The pending user message is left
// as-is: on error it is an accepted display fallback, not a defect.
// Returns false for stale request IDs.
func (c *Conversation) Fail(requestID, errText string) bool {
	matched := false
	for i := range c.Messages {
		if c.Messages[i].RequestID != requestID {
			continue
		}
		if c.Messages[i].State == StateTyping {
			c.Messages[i].State = StateFailed
			c.Messages[i].Content = errText
			c.Messages[i].RequestID = ""
			matched = true
		}
	}
	if matched {
		c.UpdatedAt = time.Now()
	}
	return matched
}

// =============================================================================
// HISTORY FLATTENING
// =============================================================================

// HistoryEntry is one question/answer pair returned by the history API.
type HistoryEntry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// FlattenHistory converts question/answer pairs into the alternating
// user/assistant message list the chat view renders. The result is
// always exactly twice the number of entries.
func FlattenHistory(entries []HistoryEntry) []Message {
	msgs := make([]Message, 0, len(entries)*2)
	for _, e := range entries {
		q := NewUserMessage(e.Question)
		a := NewAssistantMessage(e.Answer)
		if !e.Timestamp.IsZero() {
			q.Timestamp = e.Timestamp
			a.Timestamp = e.Timestamp
		}
		msgs = append(msgs, q, a)
	}
	return msgs
}
