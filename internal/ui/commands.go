// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/session"
)

// commandTimeout bounds every background network call issued by the UI.
const commandTimeout = 90 * time.Second

// loginCmd attempts a login in the background.
func loginCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return NewLoginResultMsg(client.Login(ctx, username, password))
	}
}

// sendChatCmd sends the message for an already-begun request ID.
func sendChatCmd(client *api.Client, requestID, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		reply, err := client.Chat(ctx, text)
		return NewChatResultMsg(requestID, reply, err)
	}
}

// runPipelineCmd runs the document pipeline for a local file path and
// settles the request ID with the resulting text.
func runPipelineCmd(client *api.Client, requestID, path, prompt string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return NewChatResultMsg(requestID, "", err)
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		result, err := session.NewPipeline(client).Run(ctx, filepath.Base(path), f, prompt)
		return NewChatResultMsg(requestID, result, err)
	}
}

// loadHistoryCmd fetches a conversation's history into the manager.
func loadHistoryCmd(mgr *session.Manager, client *api.Client, key string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return NewHistoryLoadedMsg(key, mgr.LoadHistory(ctx, client, key))
	}
}
