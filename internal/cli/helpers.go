// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/config"
	"github.com/jeranaias/chatdeck-tui/internal/storage"
	"github.com/jeranaias/chatdeck-tui/internal/token"
)

// newClient builds the API client from config, storage, and flags.
// Flag overrides beat config, which beats the built-in default.
func newClient(args Args) (*api.Client, *token.Store, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewFileStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open state directory: %w", err)
	}
	tokens := token.NewStore(store)

	cfg := config.Global()
	client := api.NewClient(tokens).
		WithBaseURL(cfg.API.BaseURL).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second)
	if args.BaseURL != "" {
		client = client.WithBaseURL(args.BaseURL)
	}
	return client, tokens, nil
}

// promptLine reads one line of input with a prompt.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it. Falls back to
// plain line input when stdin is not a terminal (piped input, CI).
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if !IsTTY() {
		return promptLine("")
	}
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
