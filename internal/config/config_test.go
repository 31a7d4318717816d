// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
version = "1"

[api]
base_url = "http://10.0.0.5:9000/api"
timeout_secs = 30

[ui]
theme = "light"
markdown = false
sidebar_width = 32
`
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := Default()
	if err := LoadFromPath(cfg, path); err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:9000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d", cfg.API.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" || cfg.UI.Markdown || cfg.UI.SidebarWidth != 32 {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nbase_url = \"http://x:1/api\"\n"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := Default()
	if err := LoadFromPath(cfg, path); err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.API.BaseURL != "http://x:1/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	// Unset keys keep their defaults.
	if cfg.API.TimeoutSecs != 60 || cfg.UI.Theme != "dark" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHATDECK_API_URL", "http://override:8000/api")
	t.Setenv("CHATDECK_TIMEOUT_SECS", "5")
	t.Setenv("CHATDECK_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.API.BaseURL != "http://override:8000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs != 5 {
		t.Errorf("TimeoutSecs = %d", cfg.API.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
}

func TestEnvOverrideIgnoresBadTimeout(t *testing.T) {
	t.Setenv("CHATDECK_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.API.TimeoutSecs != 60 {
		t.Errorf("TimeoutSecs = %d, expected the default to survive", cfg.API.TimeoutSecs)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.API.BaseURL = "not-a-url" }},
		{"empty url", func(c *Config) { c.API.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
		{"narrow sidebar", func(c *Config) { c.UI.SidebarWidth = 3 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
