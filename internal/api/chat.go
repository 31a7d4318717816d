// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jeranaias/chatdeck-tui/internal/model"
)

// chatRequest is the body for a chat completion.
type chatRequest struct {
	Message string `json:"message"`
}

// Chat sends a message and returns the assistant's reply. The backend
// answers with the completion as a plain text body, not JSON.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	bearer, err := c.requireToken()
	if err != nil {
		return "", err
	}

	bodyBytes, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(epChat), bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(ctx, req, bearer)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// historyEntry is the wire shape of one history record.
type historyEntry struct {
	Question  string  `json:"question"`
	Answer    string  `json:"answer"`
	Timestamp apiTime `json:"timestamp"`
}

// ChatHistory fetches the question/answer history for a username, in
// send order.
func (c *Client) ChatHistory(ctx context.Context, username string) ([]model.HistoryEntry, error) {
	params := url.Values{"username": {username}}

	var wire []historyEntry
	if err := c.getJSON(ctx, c.endpointQuery(epChatHistory, params), &wire); err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(wire))
	for _, e := range wire {
		entries = append(entries, model.HistoryEntry{
			Question:  e.Question,
			Answer:    e.Answer,
			Timestamp: e.Timestamp.Time,
		})
	}
	return entries, nil
}
