// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - Login and logout command handlers.
//
// Command: login
// Short:   Authenticate against the backend and store the session token
//
// Examples:
//   chatdeck login                Prompt for username and password
//   chatdeck login alice          Prompt for alice's password only
//
// Command: logout
// Short:   Discard the stored session token
package cli

import (
	"context"
	"fmt"
	"time"
)

// HandleLogin authenticates and persists the session token.
func HandleLogin(args Args) error {
	client, tokens, err := newClient(args)
	if err != nil {
		return err
	}

	username := args.Username
	if username == "" {
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if !args.Quiet {
		info := tokens.UserInfo()
		if info != nil && info.IsSuperadmin() {
			fmt.Printf("Logged in as %s (superadmin)\n", info.Username)
		} else {
			fmt.Printf("Logged in as %s\n", username)
		}
	}
	return nil
}

// HandleLogout discards the stored token.
func HandleLogout(args Args) error {
	_, tokens, err := newClient(args)
	if err != nil {
		return err
	}
	if tokens.Token() == "" {
		if !args.Quiet {
			fmt.Println("Not logged in.")
		}
		return nil
	}
	if err := tokens.ClearToken(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if !args.Quiet {
		fmt.Println("Logged out.")
	}
	return nil
}
