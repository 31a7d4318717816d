// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatdeck-tui/internal/ui/styles"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	valueStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	headingStyle = lipgloss.NewStyle().
			Foreground(styles.Indigo).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)

	mutedStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// label renders a status label, plain when colors are off.
func label(s string) string {
	if !ColorsEnabled() {
		return s
	}
	return labelStyle.Render(s)
}

// value renders a status value, plain when colors are off.
func value(s string) string {
	if !ColorsEnabled() {
		return s
	}
	return valueStyle.Render(s)
}

// heading renders a section heading, plain when colors are off.
func heading(s string) string {
	if !ColorsEnabled() {
		return s
	}
	return headingStyle.Render(s)
}

// PrintError prints an error to stderr, styled for terminals.
func PrintError(err error) {
	msg := "Error: " + err.Error()
	if ColorsEnabled() {
		fmt.Fprintln(os.Stderr, errorStyle.Render(msg))
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}
