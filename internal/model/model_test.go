// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessages(t *testing.T) {
	u := NewUserMessage("hello")
	if u.Role != RoleUser || u.State != StateSent || u.Content != "hello" {
		t.Errorf("NewUserMessage = %+v", u)
	}
	if u.ID == "" {
		t.Error("NewUserMessage should generate an ID")
	}

	a := NewAssistantMessage("hi")
	if a.Role != RoleAssistant || a.State != StateSent {
		t.Errorf("NewAssistantMessage = %+v", a)
	}

	p := NewPendingMessage("sending", "req-1")
	if p.State != StatePending || p.RequestID != "req-1" {
		t.Errorf("NewPendingMessage = %+v", p)
	}

	ty := NewTypingMessage("req-1")
	if ty.Role != RoleAssistant || ty.State != StateTyping || ty.Content != "" {
		t.Errorf("NewTypingMessage = %+v", ty)
	}
}

func TestStateInFlight(t *testing.T) {
	tests := []struct {
		state    State
		inFlight bool
	}{
		{StateSent, false},
		{StatePending, true},
		{StateTyping, true},
		{StateFailed, false},
	}
	for _, tc := range tests {
		if got := tc.state.InFlight(); got != tc.inFlight {
			t.Errorf("%v.InFlight() = %v, expected %v", tc.state, got, tc.inFlight)
		}
	}
}

func TestMessagePreview(t *testing.T) {
	m := NewUserMessage("a fairly long message body")
	if got := m.Preview(10); got != "a fairl..." {
		t.Errorf("Preview = %q", got)
	}
	if got := m.Preview(100); got != m.Content {
		t.Errorf("Preview should not truncate short content, got %q", got)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestResolveRewritesOptimisticPair(t *testing.T) {
	conv := NewConversation(NewChatKey)
	conv.Append(
		NewPendingMessage("Hello", "req-1"),
		NewTypingMessage("req-1"),
	)

	if !conv.HasInFlight() {
		t.Fatal("expected in-flight messages after optimistic append")
	}

	if !conv.Resolve("req-1", "Hi there") {
		t.Fatal("Resolve returned false for a live request ID")
	}

	if len(conv.Messages) != 2 {
		t.Fatalf("message count = %d, expected 2", len(conv.Messages))
	}
	if conv.Messages[0].Role != RoleUser || conv.Messages[0].State != StateSent ||
		conv.Messages[0].Content != "Hello" {
		t.Errorf("user message after resolve = %+v", conv.Messages[0])
	}
	if conv.Messages[1].Role != RoleAssistant || conv.Messages[1].State != StateSent ||
		conv.Messages[1].Content != "Hi there" {
		t.Errorf("assistant message after resolve = %+v", conv.Messages[1])
	}
	if conv.HasInFlight() {
		t.Error("no in-flight state may remain after resolve")
	}
}

func TestFailRewritesTypingOnly(t *testing.T) {
	conv := NewConversation(NewChatKey)
	conv.Append(
		NewPendingMessage("Hello", "req-1"),
		NewTypingMessage("req-1"),
	)

	if !conv.Fail("req-1", "⚠️ Server error. Try again.") {
		t.Fatal("Fail returned false for a live request ID")
	}

	// The pending user message stays pending on error: accepted display
	// fallback per the console's behavior.
	if conv.Messages[0].State != StatePending {
		t.Errorf("user message state after fail = %v, expected pending", conv.Messages[0].State)
	}
	if conv.Messages[1].State != StateFailed {
		t.Errorf("assistant state after fail = %v, expected failed", conv.Messages[1].State)
	}
	if conv.Messages[1].Content != "⚠️ Server error. Try again." {
		t.Errorf("assistant content after fail = %q", conv.Messages[1].Content)
	}
}

func TestStaleResolutionIgnored(t *testing.T) {
	conv := NewConversation(NewChatKey)
	conv.Append(
		NewPendingMessage("Hello", "req-2"),
		NewTypingMessage("req-2"),
	)

	if conv.Resolve("req-1", "late answer") {
		t.Error("Resolve with a stale request ID should return false")
	}
	if conv.Fail("req-1", "late error") {
		t.Error("Fail with a stale request ID should return false")
	}
	if conv.Messages[1].State != StateTyping {
		t.Errorf("stale resolution modified the conversation: %+v", conv.Messages[1])
	}
}

func TestFlattenHistory(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []HistoryEntry{
		{Question: "q1", Answer: "a1", Timestamp: ts},
		{Question: "q2", Answer: "a2"},
	}

	msgs := FlattenHistory(entries)
	if len(msgs) != 4 {
		t.Fatalf("flattened length = %d, expected 4", len(msgs))
	}

	// Alternating user/assistant in send order.
	wantRoles := []Role{RoleUser, RoleAssistant, RoleUser, RoleAssistant}
	wantContent := []string{"q1", "a1", "q2", "a2"}
	for i, m := range msgs {
		if m.Role != wantRoles[i] {
			t.Errorf("msgs[%d].Role = %v, expected %v", i, m.Role, wantRoles[i])
		}
		if m.Content != wantContent[i] {
			t.Errorf("msgs[%d].Content = %q, expected %q", i, m.Content, wantContent[i])
		}
		if m.State != StateSent {
			t.Errorf("msgs[%d].State = %v, expected sent", i, m.State)
		}
	}
	if !msgs[0].Timestamp.Equal(ts) {
		t.Errorf("msgs[0].Timestamp = %v, expected %v", msgs[0].Timestamp, ts)
	}
}

func TestFlattenHistoryEmpty(t *testing.T) {
	if msgs := FlattenHistory(nil); len(msgs) != 0 {
		t.Errorf("FlattenHistory(nil) length = %d, expected 0", len(msgs))
	}
}

func TestConversationReplace(t *testing.T) {
	conv := NewConversation("bob")
	conv.Append(NewUserMessage("old"))

	conv.Replace([]Message{NewUserMessage("q"), NewAssistantMessage("a")})
	if len(conv.Messages) != 2 || conv.Messages[0].Content != "q" {
		t.Errorf("Replace did not swap messages: %+v", conv.Messages)
	}
}
