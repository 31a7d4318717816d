// chatdeck - a terminal console for the chat administration service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatdeck-tui/internal/api"
	"github.com/jeranaias/chatdeck-tui/internal/cli"
	"github.com/jeranaias/chatdeck-tui/internal/config"
	"github.com/jeranaias/chatdeck-tui/internal/storage"
	"github.com/jeranaias/chatdeck-tui/internal/token"
	"github.com/jeranaias/chatdeck-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdLogin:
		err = cli.HandleLogin(args)
	case cli.CmdLogout:
		err = cli.HandleLogout(args)
	case cli.CmdAsk:
		err = cli.HandleAsk(args)
	case cli.CmdAdmins:
		err = cli.HandleAdmins(args)
	case cli.CmdStatus:
		err = cli.HandleStatus(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}

	if err != nil {
		cli.PrintError(err)
		os.Exit(1)
	}
}

// runTUI starts the full-screen interface.
func runTUI(args cli.Args) error {
	// The TUI owns the terminal; route the standard logger to a file
	// so diagnostics survive without corrupting the screen.
	cleanup := redirectLogs()
	defer cleanup()

	cfg := config.Global()

	dir, err := storage.DefaultDir()
	if err != nil {
		return err
	}
	store, err := storage.NewFileStore(dir)
	if err != nil {
		return err
	}
	tokens := token.NewStore(store)

	client := api.NewClient(tokens).
		WithBaseURL(cfg.API.BaseURL).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second)
	if args.BaseURL != "" {
		client = client.WithBaseURL(args.BaseURL)
	}

	app := ui.NewApp(cfg, client, tokens, store)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Hot-reload config edits into the running program.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := config.Watch(ctx, func(cfg *config.Config) {
			p.Send(ui.NewConfigReloadedMsg(cfg))
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("config watch stopped: %v", err)
		}
	}()

	_, err = p.Run()
	return err
}

// redirectLogs sends the standard logger to ~/.chatdeck/chatdeck.log
// and returns a cleanup func.
func redirectLogs() func() {
	dir, err := config.ConfigDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "chatdeck.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}
