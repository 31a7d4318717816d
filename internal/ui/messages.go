// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/config"
	"github.com/jeranaias/chatdeck-tui/internal/keys"
	"github.com/jeranaias/chatdeck-tui/internal/model"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// LoginResultMsg reports the outcome of a login attempt.
type LoginResultMsg struct {
	Err error
}

// NewLoginResultMsg creates a LoginResultMsg.
func NewLoginResultMsg(err error) LoginResultMsg {
	return LoginResultMsg{Err: err}
}

// ChatResultMsg settles an optimistic send: either a reply or an error
// for the request ID that Begin issued.
type ChatResultMsg struct {
	RequestID string
	Reply     string
	Err       error
}

// NewChatResultMsg creates a ChatResultMsg.
func NewChatResultMsg(requestID, reply string, err error) ChatResultMsg {
	return ChatResultMsg{RequestID: requestID, Reply: reply, Err: err}
}

// HistoryLoadedMsg reports a conversation history fetch.
type HistoryLoadedMsg struct {
	Key string
	Err error
}

// NewHistoryLoadedMsg creates a HistoryLoadedMsg.
func NewHistoryLoadedMsg(key string, err error) HistoryLoadedMsg {
	return HistoryLoadedMsg{Key: key, Err: err}
}

// AdminsLoadedMsg reports an admin roster refresh.
type AdminsLoadedMsg struct {
	Err error
}

// NewAdminsLoadedMsg creates an AdminsLoadedMsg.
func NewAdminsLoadedMsg(err error) AdminsLoadedMsg {
	return AdminsLoadedMsg{Err: err}
}

// AdminMutationMsg reports a create, delete, or password change.
type AdminMutationMsg struct {
	Action string // "create", "delete", "passwd"
	Err    error
}

// NewAdminMutationMsg creates an AdminMutationMsg.
func NewAdminMutationMsg(action string, err error) AdminMutationMsg {
	return AdminMutationMsg{Action: action, Err: err}
}

// SummariesLoadedMsg reports the file-history fetch for the admin
// detail pane: the admin's uploaded files and stored summaries.
type SummariesLoadedMsg struct {
	Username  string
	Files     []api.FileRecord
	Summaries []api.SummaryRecord
	Err       error
}

// NewSummariesLoadedMsg creates a SummariesLoadedMsg.
func NewSummariesLoadedMsg(username string, files []api.FileRecord, summaries []api.SummaryRecord, err error) SummariesLoadedMsg {
	return SummariesLoadedMsg{Username: username, Files: files, Summaries: summaries, Err: err}
}

// KeysLoadedMsg reports the API key list.
type KeysLoadedMsg struct {
	Keys []keys.Key
	Err  error
}

// NewKeysLoadedMsg creates a KeysLoadedMsg.
func NewKeysLoadedMsg(ks []keys.Key, err error) KeysLoadedMsg {
	return KeysLoadedMsg{Keys: ks, Err: err}
}

// ConfigReloadedMsg carries a fresh config after a hot reload.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// NewConfigReloadedMsg creates a ConfigReloadedMsg.
func NewConfigReloadedMsg(cfg *config.Config) ConfigReloadedMsg {
	return ConfigReloadedMsg{Config: cfg}
}

// sidebarEntry is one selectable conversation in the sidebar.
type sidebarEntry struct {
	Key   string
	Label string
}

// newChatEntry is the fixed first sidebar entry.
var newChatEntry = sidebarEntry{Key: model.NewChatKey, Label: "+ New chat"}
