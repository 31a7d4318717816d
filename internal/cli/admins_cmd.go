// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// admins_cmd.go - Administrator management commands.
//
// Command: admins
// Short:   Manage administrator accounts (superadmin token required)
//
// Examples:
//   chatdeck admins list
//   chatdeck admins create bob --avatar ./bob.png
//   chatdeck admins delete bob --confirm
//   chatdeck admins passwd bob
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/chatdeck-tui/internal/admin"
	"github.com/jeranaias/chatdeck-tui/internal/api"
)

// HandleAdmins dispatches the admins subcommands.
func HandleAdmins(args Args) error {
	client, tokens, err := newClient(args)
	if err != nil {
		return err
	}

	// Superadmin gating is server-side; this check just fails fast
	// with a clearer message than a 403 would.
	if info := tokens.UserInfo(); info != nil && !info.IsSuperadmin() {
		return fmt.Errorf("admin management requires a superadmin token")
	}

	mgr := admin.NewManager(client)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args.Subcommand {
	case "", "list":
		return handleAdminsList(ctx, mgr, args)

	case "create":
		if args.Username == "" {
			return fmt.Errorf("usage: chatdeck admins create <username>")
		}
		password, err := promptPassword("Password for " + args.Username + ": ")
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}
		var avatar *api.AvatarUpload
		if args.Avatar != "" {
			f, err := os.Open(args.Avatar)
			if err != nil {
				return fmt.Errorf("failed to open avatar: %w", err)
			}
			defer f.Close()
			avatar = &api.AvatarUpload{Filename: filepath.Base(args.Avatar), Reader: f}
		}
		if err := mgr.Create(ctx, args.Username, password, avatar); err != nil {
			return err
		}
		if !args.Quiet {
			fmt.Printf("Created administrator %s\n", args.Username)
		}
		return nil

	case "delete":
		if args.Username == "" {
			return fmt.Errorf("usage: chatdeck admins delete <username> --confirm")
		}
		if !args.Confirm {
			return fmt.Errorf("deleting %s requires --confirm", args.Username)
		}
		mgr.StageDelete(args.Username)
		if err := mgr.ConfirmDelete(ctx); err != nil {
			return err
		}
		if !args.Quiet {
			fmt.Printf("Deleted administrator %s\n", args.Username)
		}
		return nil

	case "passwd":
		if args.Username == "" {
			return fmt.Errorf("usage: chatdeck admins passwd <username>")
		}
		password, err := promptPassword("New password for " + args.Username + ": ")
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}
		if err := mgr.UpdatePassword(ctx, args.Username, password); err != nil {
			return err
		}
		if !args.Quiet {
			fmt.Printf("Updated password for %s\n", args.Username)
		}
		return nil

	default:
		return fmt.Errorf("unknown admins subcommand: %s", args.Subcommand)
	}
}

func handleAdminsList(ctx context.Context, mgr *admin.Manager, args Args) error {
	if err := mgr.Refresh(ctx); err != nil {
		return err
	}
	admins := mgr.Admins()

	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(admins)
	}

	if len(admins) == 0 {
		fmt.Println("No administrators.")
		return nil
	}
	fmt.Println(heading("Administrators"))
	for _, a := range admins {
		fmt.Printf("  %-24s %s\n", value(a.Username), label(a.ID))
	}
	return nil
}
