// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration commands.
//
// Command: config
// Short:   Show or change configuration
//
// Examples:
//   chatdeck config show
//   chatdeck config set api.base_url http://10.0.0.5:8000/api
//   chatdeck config set ui.theme light
//   chatdeck config path
package cli

import (
	"fmt"
	"strconv"

	"github.com/jeranaias/chatdeck-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow()

	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			return fmt.Errorf("usage: chatdeck config set <key> <value>")
		}
		return handleConfigSet(args.ConfigKey, args.ConfigVal)

	default:
		return fmt.Errorf("unknown config subcommand: %s", args.Subcommand)
	}
}

func handleConfigShow() error {
	cfg := config.Global()
	fmt.Println(heading("chatdeck configuration"))
	fmt.Printf("  %s %s\n", label("api.base_url:"), value(cfg.API.BaseURL))
	fmt.Printf("  %s %s\n", label("api.timeout_secs:"), value(strconv.Itoa(cfg.API.TimeoutSecs)))
	fmt.Printf("  %s %s\n", label("ui.theme:"), value(cfg.UI.Theme))
	fmt.Printf("  %s %s\n", label("ui.markdown:"), value(strconv.FormatBool(cfg.UI.Markdown)))
	fmt.Printf("  %s %s\n", label("ui.sidebar_width:"), value(strconv.Itoa(cfg.UI.SidebarWidth)))
	return nil
}

// handleConfigSet updates one key, validates, and saves.
func handleConfigSet(key, val string) error {
	cfg := config.Global()

	switch key {
	case "api.base_url":
		cfg.API.BaseURL = val
	case "api.timeout_secs":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("api.timeout_secs must be a number: %q", val)
		}
		cfg.API.TimeoutSecs = n
	case "ui.theme":
		cfg.UI.Theme = val
	case "ui.markdown":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("ui.markdown must be true or false: %q", val)
		}
		cfg.UI.Markdown = b
	case "ui.sidebar_width":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("ui.sidebar_width must be a number: %q", val)
		}
		cfg.UI.SidebarWidth = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", key, val)
	return nil
}
