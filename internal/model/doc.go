// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the
// application for representing chat conversations, messages, and the
// optimistic-update lifecycle.
//
// # Key Types
//
//   - Conversation: ordered message list for one conversation key
//   - Message: single message with role, state, and content
//   - State: explicit delivery state (Sent, Pending, Typing, Failed)
//   - HistoryEntry: question/answer pair from the history API
//
// # Usage
//
// Open a conversation and append an optimistic send:
//
//	conv := model.NewConversation(model.NewChatKey)
//	conv.Append(
//	    model.NewPendingMessage("Hello", reqID),
//	    model.NewTypingMessage(reqID),
//	)
//
// Later, resolve or fail it by request ID:
//
//	conv.Resolve(reqID, "Hi there")
package model
