// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading, validation, and hot
// reload for the application.
//
// # Key Types
//
//   - Config: the full configuration tree (api and ui sections)
//   - APIConfig: backend URL and request timeout
//   - UIConfig: theme, markdown rendering, layout
//
// # Usage
//
// Read the global config anywhere:
//
//	cfg := config.Global()
//	client.WithBaseURL(cfg.API.BaseURL)
//
// React to edits of ~/.chatdeck/config.toml:
//
//	go config.Watch(ctx, func(cfg *config.Config) {
//	    program.Send(ui.NewConfigReloadedMsg(cfg))
//	})
package config
