// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui is the Bubble Tea interface for chatdeck.
//
// The root App model routes between four screens: login, chat, admin
// management, and API keys. Network work runs in tea.Cmd goroutines
// and reports back through the typed messages in messages.go; views
// never block the update loop.
//
// # Key Types
//
//   - App: root model, screen router, auth redirect
//   - loginModel, chatModel, adminsModel, keysModel: screens
//
// # Usage
//
//	app := ui.NewApp(cfg, client, tokens, store)
//	p := tea.NewProgram(app, tea.WithAltScreen())
//	if _, err := p.Run(); err != nil {
//	    log.Fatal(err)
//	}
package ui
