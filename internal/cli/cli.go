// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for chatdeck.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdAsk
	CmdAdmins
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	BaseURL string

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Username   string
	Avatar     string
	Confirm    bool

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `chatdeck - terminal console for the chat administration service

Chatdeck talks to the local chat backend: conversations, document
processing, and administrator management, from the terminal.

Usage:
  chatdeck                   Start TUI (default)
  chatdeck login             Authenticate and store the session token
  chatdeck logout            Discard the session token
  chatdeck ask "question"    Ask a single question
  chatdeck admins [subcommand] Administrator management (superadmin)
  chatdeck status, s         Show connection and session status
  chatdeck config [show|set|path] Configuration
  chatdeck version           Show version
  chatdeck help              Show this help

Admin Commands (superadmin token required):
  chatdeck admins list              List administrator accounts
  chatdeck admins create <name>     Create an administrator (prompts for password)
    --avatar <path>                 Attach a profile image
  chatdeck admins delete <name>     Delete an administrator
    --confirm                       Required confirmation flag
  chatdeck admins passwd <name>     Change an administrator's password

Config Commands:
  chatdeck config show              Show current configuration
  chatdeck config set <key> <val>   Set a configuration value
  chatdeck config path              Print the config file path

Global Flags:
  --url URL        Override the backend base URL
  --json           Output in JSON format (status)
  --quiet, -q      Suppress non-essential output
  --verbose, -v    Verbose output
  --help, -h       Show help
  --version        Show version

Environment:
  CHATDECK_API_URL       Backend base URL
  CHATDECK_TIMEOUT_SECS  Request timeout in seconds
  CHATDECK_THEME         TUI theme (dark or light)

Files:
  ~/.chatdeck/config.toml    Configuration
  ~/.chatdeck/auth_token     Session token`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsedArgs := parseGlobalFlags(args)

	// No remaining args: default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login":
		if len(remaining) > 0 {
			parsedArgs.Username = remaining[0]
		}
		return CmdLogin, parsedArgs

	case "logout":
		return CmdLogout, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "admins", "admin":
		parseAdminArgs(&parsedArgs, remaining)
		return CmdAdmins, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "--version", "-V":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--quiet", "-q":
			parsed.Quiet = true
		case "--verbose", "-v":
			parsed.Verbose = true
		case "--json":
			parsed.JSON = true
		case "--url":
			if i+1 < len(args) {
				i++
				parsed.BaseURL = args[i]
			}
		default:
			remaining = append(remaining, args[i])
		}
	}
	return remaining, parsed
}

// parseAskArgs joins the remaining args into the query text.
func parseAskArgs(parsed *Args, remaining []string) {
	parsed.Query = strings.Join(remaining, " ")
}

// parseAdminArgs reads the admins subcommand, target, and flags.
func parseAdminArgs(parsed *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--confirm":
			parsed.Confirm = true
		case arg == "--avatar":
			if i+1 < len(remaining) {
				i++
				parsed.Avatar = remaining[i]
			}
		case parsed.Subcommand == "":
			parsed.Subcommand = strings.ToLower(arg)
		case parsed.Username == "":
			parsed.Username = arg
		}
	}
}

// parseConfigArgs reads the config subcommand, key, and value.
func parseConfigArgs(parsed *Args, remaining []string) {
	if len(remaining) == 0 {
		parsed.Subcommand = "show"
		return
	}
	parsed.Subcommand = strings.ToLower(remaining[0])
	if len(remaining) > 1 {
		parsed.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		parsed.ConfigVal = remaining[2]
	}
}

// PrintUsage prints the help text.
func PrintUsage() {
	fmt.Println(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("chatdeck %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
